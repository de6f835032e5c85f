// AngelaMos | 2026
// repository.go

package favorite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

type Repository interface {
	Add(ctx context.Context, fav *Favorite) error
	AddMany(ctx context.Context, userID string, tipIDs []string, at time.Time) (map[string]struct{}, error)
	Remove(ctx context.Context, userID, tipID string) error
	Exists(ctx context.Context, userID, tipID string) (bool, error)
	ExistingTipIDs(ctx context.Context, userID string, tipIDs []string) (map[string]struct{}, error)
	List(ctx context.Context, userID string, page core.PageRequest) ([]Favorite, int, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Add(ctx context.Context, fav *Favorite) error {
	query := `
		INSERT INTO user_favorites (user_id, tip_id, added_at)
		VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, fav.UserID, fav.TipID, fav.AddedAt)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("add favorite: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("add favorite: %w", err)
	}

	return nil
}

// AddMany inserts every pair in one statement and returns the tip ids it
// stored. Pairs that already exist are ignored.
func (r *repository) AddMany(
	ctx context.Context,
	userID string,
	tipIDs []string,
	at time.Time,
) (map[string]struct{}, error) {
	inserted := make(map[string]struct{}, len(tipIDs))
	if len(tipIDs) == 0 {
		return inserted, nil
	}

	query := `
		INSERT INTO user_favorites (user_id, tip_id, added_at)
		SELECT $1, tip_id, $3
		FROM unnest($2::uuid[]) AS tip_id
		ON CONFLICT (user_id, tip_id) DO NOTHING
		RETURNING tip_id::text`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, userID, tipIDs, at); err != nil {
		return nil, fmt.Errorf("add favorites: %w", err)
	}

	for _, id := range ids {
		inserted[id] = struct{}{}
	}

	return inserted, nil
}

func (r *repository) Remove(ctx context.Context, userID, tipID string) error {
	query := `DELETE FROM user_favorites WHERE user_id = $1 AND tip_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, tipID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("remove favorite: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Exists(ctx context.Context, userID, tipID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM user_favorites WHERE user_id = $1 AND tip_id = $2
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, tipID); err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}

	return exists, nil
}

func (r *repository) ExistingTipIDs(
	ctx context.Context,
	userID string,
	tipIDs []string,
) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	if len(tipIDs) == 0 {
		return existing, nil
	}

	query := `
		SELECT tip_id::text
		FROM user_favorites
		WHERE user_id = $1 AND tip_id = ANY($2::uuid[])`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, userID, tipIDs); err != nil {
		return nil, fmt.Errorf("existing favorites: %w", err)
	}

	for _, id := range ids {
		existing[id] = struct{}{}
	}

	return existing, nil
}

// List pages the user's favorites whose tips are still active, newest
// first.
func (r *repository) List(
	ctx context.Context,
	userID string,
	page core.PageRequest,
) ([]Favorite, int, error) {
	const activeFavorites = `
		FROM user_favorites f
		JOIN tips t ON t.id = f.tip_id AND t.deleted_at IS NULL
		JOIN categories c ON c.id = t.category_id AND c.deleted_at IS NULL
		WHERE f.user_id = $1`

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) `+activeFavorites, userID); err != nil {
		return nil, 0, fmt.Errorf("count favorites: %w", err)
	}

	if total == 0 {
		return []Favorite{}, 0, nil
	}

	query := `
		SELECT f.user_id, f.tip_id, f.added_at ` + activeFavorites + `
		ORDER BY f.added_at DESC, f.tip_id
		LIMIT $2 OFFSET $3`

	var favorites []Favorite
	err := r.db.SelectContext(ctx, &favorites, query, userID, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}

	return favorites, total, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	query := `
		SELECT COUNT(*)
		FROM user_favorites f
		JOIN tips t ON t.id = f.tip_id AND t.deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return total, nil
}
