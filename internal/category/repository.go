// AngelaMos | 2026
// repository.go

package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*Category, error)
	List(ctx context.Context) ([]Category, error)
	NameExists(ctx context.Context, name, excludeID string) (bool, error)
	Update(ctx context.Context, category *Category) error
	SoftDeleteCascade(ctx context.Context, id string, at time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const categoryColumns = `id, name, image, created_at, updated_at, deleted_at`

func (r *repository) Create(ctx context.Context, category *Category) error {
	query := `
		INSERT INTO categories (id, name, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Image,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = $1 AND deleted_at IS NULL`

	var category Category
	err := r.db.GetContext(ctx, &category, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &category, nil
}

// GetByIDs returns the active categories among ids, keyed by id.
func (r *repository) GetByIDs(
	ctx context.Context,
	ids []string,
) (map[string]*Category, error) {
	result := make(map[string]*Category, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = ANY($1) AND deleted_at IS NULL`

	var categories []Category
	if err := r.db.SelectContext(ctx, &categories, query, ids); err != nil {
		return nil, fmt.Errorf("get categories by ids: %w", err)
	}

	for i := range categories {
		result[categories[i].ID] = &categories[i]
	}

	return result, nil
}

func (r *repository) List(ctx context.Context) ([]Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE deleted_at IS NULL
		ORDER BY lower(name), id`

	var categories []Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

// NameExists checks active and soft-deleted rows alike, so a deleted
// category's name stays reserved.
func (r *repository) NameExists(
	ctx context.Context,
	name, excludeID string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM categories
			WHERE lower(name) = lower($1) AND ($2 = '' OR id::text <> $2)
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name, excludeID); err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}

	return exists, nil
}

func (r *repository) Update(ctx context.Context, category *Category) error {
	query := `
		UPDATE categories
		SET name = $2, image = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Image,
		category.UpdatedAt,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("update category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update category: %w", core.ErrNotFound)
	}

	return nil
}

// SoftDeleteCascade marks the category and every active tip in it deleted
// with the same timestamp, in one transaction. It returns the number of
// tips affected.
func (r *repository) SoftDeleteCascade(
	ctx context.Context,
	id string,
	at time.Time,
) (int, error) {
	var tipsDeleted int

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE categories
			SET deleted_at = $2, updated_at = $2
			WHERE id = $1 AND deleted_at IS NULL`,
			id, at,
		)
		if err != nil {
			return fmt.Errorf("delete category: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("delete category: %w", core.ErrNotFound)
		}

		result, err = tx.ExecContext(ctx, `
			UPDATE tips
			SET deleted_at = $2, updated_at = $2
			WHERE category_id = $1 AND deleted_at IS NULL`,
			id, at,
		)
		if err != nil {
			return fmt.Errorf("delete category tips: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete category tips: %w", err)
		}
		tipsDeleted = int(affected)

		return nil
	})

	return tipsDeleted, err
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	query := `SELECT COUNT(*) FROM categories WHERE deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return total, nil
}
