package domain

import "strings"

// Field length limits applied by Sanitize before any business rule runs.
// These match the column widths the API promises, not the database's —
// the store accepts longer values, the service never sends them.
const (
	MaxTeamNameLen = 100
	MaxUserIDLen   = 100
	MaxUserNameLen = 100
	MaxTagNameLen  = 50
	MaxColorLen    = 10
	MaxCardIDLen   = 100
)

// Sanitize trims surrounding whitespace and truncates s to max runes.
// Truncation counts runes, not bytes, so multi-byte emoji colors are
// never cut mid-character.
func Sanitize(s string, max int) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > max {
		s = string(r[:max])
	}
	return s
}
