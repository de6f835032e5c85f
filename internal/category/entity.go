// AngelaMos | 2026
// entity.go

package category

import (
	"time"

	"github.com/carterperez-dev/lifehacking-api/internal/storage"
)

type Category struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Image     *storage.Image `db:"image"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

func (c *Category) IsDeleted() bool {
	return c.DeletedAt != nil
}
