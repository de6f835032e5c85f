// AngelaMos | 2026
// service.go

package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
	"github.com/carterperez-dev/lifehacking-api/internal/validation"
)

type Service struct {
	repo  Repository
	cache ListCache
	now   func() time.Time
}

func NewService(repo Repository, cache ListCache) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]CategoryResponse, error) {
	cached, version, ok := s.cache.Get(ctx)
	if ok {
		return cached, nil
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := ToCategoryResponseList(categories)
	s.cache.Set(ctx, version, responses)

	return responses, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Category, error) {
	id, ok := core.ParseID(id)
	if !ok {
		return nil, core.NotFoundError("category")
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err)
	}

	return category, nil
}

// GetByIDs returns the active categories among ids. Missing or deleted ids
// are simply absent from the map.
func (s *Service) GetByIDs(
	ctx context.Context,
	ids []string,
) (map[string]*Category, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if canonical, ok := core.ParseID(id); ok {
			valid = append(valid, canonical)
		}
	}
	return s.repo.GetByIDs(ctx, valid)
}

func (s *Service) Create(
	ctx context.Context,
	req CategoryRequest,
) (*Category, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(ctx, req.Name, ""); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	category := &Category{
		ID:        core.NewID(),
		Name:      req.Name,
		Image:     req.Image.ToImage(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, duplicateName(req.Name)
		}
		return nil, err
	}

	s.cache.Invalidate(ctx)

	return category, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req CategoryRequest,
) (*Category, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(ctx, req.Name, category.ID); err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Image = req.Image.ToImage()
	category.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, duplicateName(req.Name)
		}
		return nil, notFoundAs(err)
	}

	s.cache.Invalidate(ctx)

	return category, nil
}

// Delete soft-deletes the category and cascades to its tips.
func (s *Service) Delete(ctx context.Context, id string) error {
	id, ok := core.ParseID(id)
	if !ok {
		return core.NotFoundError("category")
	}

	tipsDeleted, err := s.repo.SoftDeleteCascade(ctx, id, s.now().UTC())
	if err != nil {
		return notFoundAs(err)
	}

	s.cache.Invalidate(ctx)

	slog.InfoContext(ctx, "category deleted",
		"category_id", id,
		"tips_deleted", tipsDeleted,
	)

	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) ensureNameAvailable(ctx context.Context, name, excludeID string) error {
	exists, err := s.repo.NameExists(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return duplicateName(name)
	}
	return nil
}

func duplicateName(name string) error {
	return core.ConflictError(fmt.Sprintf("A category named '%s' already exists.", name))
}

func notFoundAs(err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return core.NotFoundError("category")
	}
	return err
}
