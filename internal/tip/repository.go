// AngelaMos | 2026
// repository.go

package tip

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, tip *Tip) error
	GetByID(ctx context.Context, id string) (*Tip, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*Tip, error)
	Search(ctx context.Context, params SearchParams) ([]Tip, int, error)
	Update(ctx context.Context, tip *Tip) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const tipSelect = `
	SELECT t.id, t.title, t.description, t.steps, t.category_id,
		c.name AS category_name, t.tags, t.video_url, t.image,
		t.created_at, t.updated_at, t.deleted_at
	FROM tips t
	JOIN categories c ON c.id = t.category_id`

var sortColumns = map[string]string{
	SortByCreatedAt: "t.created_at",
	SortByUpdatedAt: "t.updated_at",
	SortByTitle:     "lower(t.title)",
}

func (r *repository) Create(ctx context.Context, tip *Tip) error {
	query := `
		INSERT INTO tips (
			id, title, description, steps, category_id,
			tags, video_url, image, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		tip.ID,
		tip.Title,
		tip.Description,
		tip.Steps,
		tip.CategoryID,
		tip.Tags,
		tip.VideoURL,
		tip.Image,
		tip.CreatedAt,
		tip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create tip: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Tip, error) {
	query := tipSelect + `
		WHERE t.id = $1 AND t.deleted_at IS NULL AND c.deleted_at IS NULL`

	var tip Tip
	err := r.db.GetContext(ctx, &tip, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tip: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tip: %w", err)
	}

	return &tip, nil
}

// GetByIDs returns the active tips among ids in one query.
func (r *repository) GetByIDs(
	ctx context.Context,
	ids []string,
) (map[string]*Tip, error) {
	result := make(map[string]*Tip, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := tipSelect + `
		WHERE t.id = ANY($1) AND t.deleted_at IS NULL AND c.deleted_at IS NULL`

	var tips []Tip
	if err := r.db.SelectContext(ctx, &tips, query, ids); err != nil {
		return nil, fmt.Errorf("get tips by ids: %w", err)
	}

	for i := range tips {
		result[tips[i].ID] = &tips[i]
	}

	return result, nil
}

func (r *repository) Search(
	ctx context.Context,
	params SearchParams,
) ([]Tip, int, error) {
	where, args := searchFilter(params)

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM tips t
		JOIN categories c ON c.id = t.category_id
		WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count tips: %w", err)
	}

	if total == 0 {
		return []Tip{}, 0, nil
	}

	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = sortColumns[SortByCreatedAt]
	}
	direction := "DESC"
	if params.SortDirection == SortAscending {
		direction = "ASC"
	}

	args = append(args, params.Page.PageSize, params.Page.Offset())
	query := tipSelect + `
		WHERE ` + where + `
		ORDER BY ` + column + ` ` + direction + `, t.id ` + direction + `
		LIMIT $` + fmt.Sprint(len(args)-1) + ` OFFSET $` + fmt.Sprint(len(args))

	var tips []Tip
	if err := r.db.SelectContext(ctx, &tips, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search tips: %w", err)
	}

	return tips, total, nil
}

// searchFilter builds the shared WHERE clause. Every user value is bound
// as a parameter; only the fixed fragments are concatenated.
func searchFilter(params SearchParams) (string, []any) {
	clauses := []string{"t.deleted_at IS NULL", "c.deleted_at IS NULL"}
	var args []any

	if params.Query != "" {
		args = append(args, "%"+core.EscapeLike(params.Query)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(t.title ILIKE $%d OR t.description ILIKE $%d)", n, n))
	}

	if params.CategoryID != "" {
		args = append(args, params.CategoryID)
		clauses = append(clauses, fmt.Sprintf("t.category_id = $%d", len(args)))
	}

	if len(params.Tags) > 0 {
		args = append(args, params.Tags)
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM jsonb_array_elements_text(t.tags) AS tag
			WHERE lower(tag) = ANY($%d)
		)`, len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func (r *repository) Update(ctx context.Context, tip *Tip) error {
	query := `
		UPDATE tips
		SET title = $2, description = $3, steps = $4, category_id = $5,
			tags = $6, video_url = $7, image = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query,
		tip.ID,
		tip.Title,
		tip.Description,
		tip.Steps,
		tip.CategoryID,
		tip.Tags,
		tip.VideoURL,
		tip.Image,
		tip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tip: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tip: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update tip: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE tips
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("delete tip: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tip: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete tip: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	query := `
		SELECT COUNT(*)
		FROM tips t
		JOIN categories c ON c.id = t.category_id
		WHERE t.deleted_at IS NULL AND c.deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count tips: %w", err)
	}
	return total, nil
}
