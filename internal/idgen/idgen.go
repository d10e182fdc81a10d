// Package idgen produces the two kinds of identifiers the service hands out:
// UUID primary keys and short human-typable invite codes.
package idgen

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// inviteAlphabet is uppercase alphanumeric with the easily-confused
// characters (0/O, 1/I) removed, since invite codes are typed by hand.
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// InviteCodeLen is the fixed length of invite codes.
const InviteCodeLen = 6

// NewID returns a random UUID for use as an entity primary key.
// No collision check is performed; the space is large enough that a
// collision would surface as a primary-key violation, treated as fatal.
func NewID() uuid.UUID {
	return uuid.New()
}

// NewInviteCode returns a 6-character uppercase code from a crypto/rand
// source. Uniqueness across teams is enforced by the database's unique
// constraint at insert time, not here.
func NewInviteCode() string {
	buf := make([]byte, InviteCodeLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic("idgen: crypto/rand unavailable: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf)
}
