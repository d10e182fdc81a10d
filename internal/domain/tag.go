package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a named, colored label owned by a team.
// Name is unique per team; Color is a short emoji/string token.
type Tag struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	Name      string
	Color     string
	CreatedAt time.Time
}

// DefaultTag is one of the tags seeded when a team is created.
type DefaultTag struct {
	Name  string
	Color string
}

// DefaultTags lists the six tags every new team starts with, in seed order.
func DefaultTags() []DefaultTag {
	return []DefaultTag{
		{Name: "Urgent", Color: "🔥"},
		{Name: "In Progress", Color: "🟡"},
		{Name: "Review", Color: "🔵"},
		{Name: "Done", Color: "✅"},
		{Name: "Blocked", Color: "🔒"},
		{Name: "Bug", Color: "🐛"},
	}
}
