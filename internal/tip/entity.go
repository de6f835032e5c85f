// AngelaMos | 2026
// entity.go

package tip

import (
	"database/sql/driver"
	"time"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
	"github.com/carterperez-dev/lifehacking-api/internal/storage"
)

const (
	MaxSteps = 20
	MaxTags  = 10
)

type Step struct {
	Number      int    `json:"stepNumber"`
	Description string `json:"description"`
}

// Steps is stored as a JSON array column, ordered by Number.
type Steps []Step

func (s *Steps) Scan(src any) error {
	return core.ScanDocument(src, s)
}

func (s Steps) Value() (driver.Value, error) {
	if s == nil {
		s = Steps{}
	}
	return core.DocumentValue([]Step(s))
}

type Tags []string

func (t *Tags) Scan(src any) error {
	return core.ScanDocument(src, t)
}

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	return core.DocumentValue([]string(t))
}

type Tip struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	Steps        Steps          `db:"steps"`
	CategoryID   string         `db:"category_id"`
	CategoryName string         `db:"category_name"`
	Tags         Tags           `db:"tags"`
	VideoURL     *string        `db:"video_url"`
	Image        *storage.Image `db:"image"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

func (t *Tip) IsDeleted() bool {
	return t.DeletedAt != nil
}
