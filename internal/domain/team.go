package domain

import (
	"time"

	"github.com/google/uuid"
)

// Team is the tenant boundary. Members, tags, and card-tag links all belong
// to exactly one team and are deleted with it.
type Team struct {
	ID         uuid.UUID
	Name       string
	InviteCode string
	CreatedAt  time.Time
}

// Member is a user's association with a team. UserID is an opaque external
// identity — the service performs no authentication of its own.
// A user joins a team at most once: (TeamID, UserID) is unique.
type Member struct {
	ID       uuid.UUID
	TeamID   uuid.UUID
	UserID   string
	Name     string
	JoinedAt time.Time
}
