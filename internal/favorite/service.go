// AngelaMos | 2026
// service.go

package favorite

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/lifehacking-api/internal/audit"
	"github.com/carterperez-dev/lifehacking-api/internal/core"
	"github.com/carterperez-dev/lifehacking-api/internal/tip"
	"github.com/carterperez-dev/lifehacking-api/internal/validation"
)

// TipLookup resolves active tips. tip.Service satisfies it.
type TipLookup interface {
	GetByID(ctx context.Context, id string) (*tip.Tip, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*tip.Tip, error)
}

type Service struct {
	repo    Repository
	tips    TipLookup
	auditor audit.Logger
	now     func() time.Time
}

func NewService(repo Repository, tips TipLookup, auditor audit.Logger) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{
		repo:    repo,
		tips:    tips,
		auditor: auditor,
		now:     time.Now,
	}
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	page core.PageRequest,
) (core.PagedResponse[FavoriteResponse], error) {
	favorites, total, err := s.repo.List(ctx, userID, page)
	if err != nil {
		return core.PagedResponse[FavoriteResponse]{}, err
	}

	ids := make([]string, 0, len(favorites))
	for _, fav := range favorites {
		ids = append(ids, fav.TipID)
	}

	tips, err := s.tips.GetByIDs(ctx, ids)
	if err != nil {
		return core.PagedResponse[FavoriteResponse]{}, err
	}

	items := make([]FavoriteResponse, 0, len(favorites))
	for _, fav := range favorites {
		t, ok := tips[fav.TipID]
		if !ok {
			continue
		}
		items = append(items, FavoriteResponse{
			TipID:   fav.TipID,
			AddedAt: fav.AddedAt,
			Tip:     tip.ToTipResponse(t),
		})
	}

	return core.NewPagedResponse(items, total, page), nil
}

func (s *Service) IsFavorite(ctx context.Context, userID, tipID string) (*StatusResponse, error) {
	id, ok := core.ParseID(tipID)
	if !ok {
		return &StatusResponse{TipID: tipID}, nil
	}

	exists, err := s.repo.Exists(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	return &StatusResponse{TipID: id, IsFavorite: exists}, nil
}

func (s *Service) Add(ctx context.Context, userID, tipID string) (*FavoriteResponse, error) {
	t, err := s.tips.GetByID(ctx, tipID)
	if err != nil {
		s.auditFailure(ctx, audit.EventFavoriteAdded, userID, tipID, "tip_not_found")
		return nil, err
	}

	fav := &Favorite{
		UserID:  userID,
		TipID:   t.ID,
		AddedAt: s.now().UTC(),
	}

	if err := s.repo.Add(ctx, fav); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			s.auditFailure(ctx, audit.EventFavoriteAdded, userID, tipID, "already_favorite")
			return nil, core.ConflictError("The tip is already in your favorites.")
		}
		return nil, err
	}

	s.auditor.Log(ctx, audit.Event{
		Type:       audit.EventFavoriteAdded,
		Outcome:    audit.OutcomeSuccess,
		SubjectID:  userID,
		Properties: map[string]any{"tip_id": tipID},
	})

	return &FavoriteResponse{
		TipID:   fav.TipID,
		AddedAt: fav.AddedAt,
		Tip:     tip.ToTipResponse(t),
	}, nil
}

func (s *Service) Remove(ctx context.Context, userID, tipID string) error {
	id, ok := core.ParseID(tipID)
	if !ok {
		return core.NotFoundError("favorite")
	}
	tipID = id

	if err := s.repo.Remove(ctx, userID, tipID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.auditFailure(ctx, audit.EventFavoriteRemoved, userID, tipID, "not_favorite")
			return core.NotFoundError("favorite")
		}
		return err
	}

	s.auditor.Log(ctx, audit.Event{
		Type:       audit.EventFavoriteRemoved,
		Outcome:    audit.OutcomeSuccess,
		SubjectID:  userID,
		Properties: map[string]any{"tip_id": tipID},
	})

	return nil
}

// Merge adds a batch of tips, typically favorites collected before the
// user signed in. Repeated calls with the same ids add nothing further.
func (s *Service) Merge(ctx context.Context, userID string, req MergeRequest) (*MergeResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	ctx, span := core.StartSpan(ctx, "favorite.merge",
		attribute.Int("favorite.received", len(req.TipIDs)),
	)

	resp, err := s.merge(ctx, userID, req.TipIDs)
	core.EndSpan(span, err)
	if err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, audit.Event{
		Type:      audit.EventFavoritesMerged,
		Outcome:   audit.OutcomeSuccess,
		SubjectID: userID,
		Properties: map[string]any{
			"received": resp.TotalReceived,
			"added":    resp.Added,
			"skipped":  resp.Skipped,
			"failed":   resp.Failed,
		},
	})

	return resp, nil
}

func (s *Service) merge(ctx context.Context, userID string, tipIDs []string) (*MergeResponse, error) {
	resp := &MergeResponse{
		TotalReceived: len(tipIDs),
		AddedTipIDs:   []string{},
		SkippedTipIDs: []string{},
		FailedTipIDs:  []FailedTip{},
	}

	seen := make(map[string]struct{}, len(tipIDs))
	candidates := make([]string, 0, len(tipIDs))

	for _, raw := range tipIDs {
		trimmed := strings.TrimSpace(raw)
		id, valid := core.ParseID(trimmed)

		key := id
		if !valid {
			key = strings.ToLower(trimmed)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if !valid {
			resp.FailedTipIDs = append(resp.FailedTipIDs, FailedTip{TipID: raw, Reason: reasonInvalidID})
			continue
		}
		candidates = append(candidates, id)
	}

	existing, err := s.repo.ExistingTipIDs(ctx, userID, candidates)
	if err != nil {
		return nil, err
	}

	var unknown []string
	for _, id := range candidates {
		if _, ok := existing[id]; ok {
			resp.SkippedTipIDs = append(resp.SkippedTipIDs, id)
			continue
		}
		unknown = append(unknown, id)
	}

	active, err := s.tips.GetByIDs(ctx, unknown)
	if err != nil {
		return nil, err
	}

	toAdd := make([]string, 0, len(unknown))
	for _, id := range unknown {
		if _, ok := active[id]; !ok {
			resp.FailedTipIDs = append(resp.FailedTipIDs, FailedTip{TipID: id, Reason: reasonTipNotFound})
			continue
		}
		toAdd = append(toAdd, id)
	}

	inserted, err := s.repo.AddMany(ctx, userID, toAdd, s.now().UTC())
	if err != nil {
		return nil, err
	}

	// A concurrent request may have stored some of toAdd first.
	for _, id := range toAdd {
		if _, ok := inserted[id]; ok {
			resp.AddedTipIDs = append(resp.AddedTipIDs, id)
		} else {
			resp.SkippedTipIDs = append(resp.SkippedTipIDs, id)
		}
	}

	resp.Added = len(resp.AddedTipIDs)
	resp.Skipped = len(resp.SkippedTipIDs)
	resp.Failed = len(resp.FailedTipIDs)

	return resp, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) auditFailure(
	ctx context.Context,
	eventType audit.EventType,
	userID, tipID, reason string,
) {
	s.auditor.Log(ctx, audit.Event{
		Type:      eventType,
		Outcome:   audit.OutcomeFailure,
		SubjectID: userID,
		Properties: map[string]any{
			"tip_id": tipID,
			"reason": reason,
		},
	})
}
