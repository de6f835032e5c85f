// AngelaMos | 2026
// ids.go

package core

import (
	"github.com/google/uuid"
)

const idLength = 36

func NewID() string {
	return uuid.New().String()
}

// ParseID returns the canonical lower-case form of id. Only the hyphenated
// 36 character form is accepted; braces, urn:uuid: prefixes and hyphenless
// spellings are rejected.
func ParseID(id string) (string, bool) {
	if len(id) != idLength {
		return "", false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// ValidID reports whether id can be a primary key. Lookups with anything
// else are answered as not found without touching the database.
func ValidID(id string) bool {
	_, ok := ParseID(id)
	return ok
}
