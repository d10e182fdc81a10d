package domain

import "github.com/google/uuid"

// CardTag links a tag to an externally-owned card, scoped to a team.
// Cards are not modeled here — CardID is an opaque string owned by another
// system and may contain characters that were percent-encoded in transit.
// (TeamID, CardID, TagID) is unique; attaching twice is a no-op.
type CardTag struct {
	ID     uuid.UUID
	TeamID uuid.UUID
	CardID string
	TagID  uuid.UUID
}

// CardTagView is a CardTag joined with its tag's display fields,
// as returned by the card-tags listing.
type CardTagView struct {
	CardID   string
	TagID    uuid.UUID
	TagName  string
	TagColor string
}
