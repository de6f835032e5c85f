// AngelaMos | 2026
// service.go

package tip

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/lifehacking-api/internal/category"
	"github.com/carterperez-dev/lifehacking-api/internal/core"
	"github.com/carterperez-dev/lifehacking-api/internal/validation"
)

// CategoryLookup resolves active categories. category.Service satisfies it.
type CategoryLookup interface {
	GetByID(ctx context.Context, id string) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryLookup
	now        func() time.Time
}

func NewService(repo Repository, categories CategoryLookup) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		now:        time.Now,
	}
}

func (s *Service) Search(
	ctx context.Context,
	params SearchParams,
) (core.PagedResponse[TipResponse], error) {
	ctx, span := core.StartSpan(ctx, "tip.search",
		attribute.String("tip.sort_by", params.SortBy),
		attribute.Int("tip.page_number", params.Page.PageNumber),
		attribute.Int("tip.page_size", params.Page.PageSize),
	)

	tips, total, err := s.repo.Search(ctx, params)
	core.EndSpan(span, err)
	if err != nil {
		return core.PagedResponse[TipResponse]{}, err
	}

	return core.NewPagedResponse(ToTipResponseList(tips), total, params.Page), nil
}

// ListByCategory pages the tips of one active category.
func (s *Service) ListByCategory(
	ctx context.Context,
	categoryID string,
	params SearchParams,
) (core.PagedResponse[TipResponse], error) {
	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return core.PagedResponse[TipResponse]{}, err
	}

	params.CategoryID = cat.ID
	return s.Search(ctx, params)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Tip, error) {
	id, ok := core.ParseID(id)
	if !ok {
		return nil, core.NotFoundError("tip")
	}

	tip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err)
	}

	return tip, nil
}

// GetByIDs returns the active tips among ids. Unknown, deleted or
// malformed ids are absent from the map.
func (s *Service) GetByIDs(ctx context.Context, ids []string) (map[string]*Tip, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if canonical, ok := core.ParseID(id); ok {
			valid = append(valid, canonical)
		}
	}
	return s.repo.GetByIDs(ctx, valid)
}

func (s *Service) Create(ctx context.Context, req TipRequest) (*Tip, error) {
	req = normalizeRequest(req)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	cat, err := s.activeCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	tip := &Tip{
		ID:           core.NewID(),
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyRequest(tip, req)

	if err := s.repo.Create(ctx, tip); err != nil {
		return nil, err
	}

	return tip, nil
}

func (s *Service) Update(ctx context.Context, id string, req TipRequest) (*Tip, error) {
	req = normalizeRequest(req)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	tip, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cat, err := s.activeCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	applyRequest(tip, req)
	tip.CategoryID = cat.ID
	tip.CategoryName = cat.Name
	tip.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, tip); err != nil {
		return nil, notFoundAs(err)
	}

	return tip, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id, ok := core.ParseID(id)
	if !ok {
		return core.NotFoundError("tip")
	}

	if err := s.repo.SoftDelete(ctx, id, s.now().UTC()); err != nil {
		return notFoundAs(err)
	}

	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// activeCategory reports a missing or deleted category as a field error
// on categoryId rather than a 404 on the tip.
func (s *Service) activeCategory(ctx context.Context, id string) (*category.Category, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.FieldError("categoryId", "must reference an existing category")
		}
		return nil, err
	}
	return cat, nil
}

// normalizeRequest trims every text field and drops repeated tags,
// comparing case-insensitively and keeping the first spelling.
func normalizeRequest(req TipRequest) TipRequest {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.CategoryID = strings.TrimSpace(req.CategoryID)
	req.VideoURL = strings.TrimSpace(req.VideoURL)

	steps := make([]StepRequest, len(req.Steps))
	for i, step := range req.Steps {
		steps[i] = StepRequest{Description: strings.TrimSpace(step.Description)}
	}
	if req.Steps != nil {
		req.Steps = steps
	}

	if req.Tags != nil {
		seen := make(map[string]struct{}, len(req.Tags))
		tags := make([]string, 0, len(req.Tags))
		for _, tag := range req.Tags {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				key := strings.ToLower(tag)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
			}
			tags = append(tags, tag)
		}
		req.Tags = tags
	}

	return req
}

// applyRequest copies a validated request onto tip. Steps are numbered
// from 1 in the order given.
func applyRequest(tip *Tip, req TipRequest) {
	tip.Title = req.Title
	tip.Description = req.Description

	tip.Steps = make(Steps, len(req.Steps))
	for i, step := range req.Steps {
		tip.Steps[i] = Step{Number: i + 1, Description: step.Description}
	}

	tip.Tags = Tags(req.Tags)
	if tip.Tags == nil {
		tip.Tags = Tags{}
	}

	tip.VideoURL = nil
	if req.VideoURL != "" {
		videoURL := req.VideoURL
		tip.VideoURL = &videoURL
	}

	tip.Image = req.Image.ToImage()
}

func notFoundAs(err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return core.NotFoundError("tip")
	}
	return err
}
