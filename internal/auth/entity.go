// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

// Identity is what the identity provider asserts about the caller.
type Identity struct {
	Subject   string
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (i *Identity) IsExpired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}
