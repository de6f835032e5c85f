// AngelaMos | 2026
// entity.go

package favorite

import (
	"time"
)

// Favorite links a user to a tip. The pair is unique and removing a
// favorite deletes the row.
type Favorite struct {
	UserID  string    `db:"user_id"`
	TipID   string    `db:"tip_id"`
	AddedAt time.Time `db:"added_at"`
}
