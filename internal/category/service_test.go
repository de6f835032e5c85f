// AngelaMos | 2026
// service_test.go

package category

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

type fakeTip struct {
	categoryID string
	deletedAt  *time.Time
}

type fakeRepository struct {
	mu         sync.Mutex
	categories map[string]*Category
	tips       map[string]*fakeTip
	listCalls  int
	onList     func()
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		categories: map[string]*Category{},
		tips:       map[string]*fakeTip{},
	}
}

func (f *fakeRepository) Create(_ context.Context, c *Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *c
	f.categories[c.ID] = &copied
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.categories[id]
	if !ok || c.IsDeleted() {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (f *fakeRepository) GetByIDs(_ context.Context, ids []string) (map[string]*Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := map[string]*Category{}
	for _, id := range ids {
		if c, ok := f.categories[id]; ok && !c.IsDeleted() {
			copied := *c
			out[id] = &copied
		}
	}
	return out, nil
}

func (f *fakeRepository) List(_ context.Context) ([]Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	var out []Category
	for _, c := range f.categories {
		if !c.IsDeleted() {
			out = append(out, *c)
		}
	}
	if f.onList != nil {
		f.onList()
	}
	return out, nil
}

func (f *fakeRepository) NameExists(_ context.Context, name, excludeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, c := range f.categories {
		if id != excludeID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Update(_ context.Context, c *Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.categories[c.ID]
	if !ok || existing.IsDeleted() {
		return fmt.Errorf("update category: %w", core.ErrNotFound)
	}
	copied := *c
	f.categories[c.ID] = &copied
	return nil
}

func (f *fakeRepository) SoftDeleteCascade(_ context.Context, id string, at time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.categories[id]
	if !ok || c.IsDeleted() {
		return 0, fmt.Errorf("delete category: %w", core.ErrNotFound)
	}
	c.DeletedAt = &at
	c.UpdatedAt = at

	n := 0
	for _, tip := range f.tips {
		if tip.categoryID == id && tip.deletedAt == nil {
			tip.deletedAt = &at
			n++
		}
	}
	return n, nil
}

func (f *fakeRepository) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, c := range f.categories {
		if !c.IsDeleted() {
			n++
		}
	}
	return n, nil
}

type countingCache struct {
	version     int64
	lists       map[int64][]CategoryResponse
	invalidated int
}

func (c *countingCache) Get(context.Context) ([]CategoryResponse, int64, bool) {
	list, ok := c.lists[c.version]
	return list, c.version, ok
}

func (c *countingCache) Set(_ context.Context, version int64, categories []CategoryResponse) {
	c.lists[version] = categories
}

func (c *countingCache) Invalidate(context.Context) {
	c.version++
	c.invalidated++
}

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newTestService() (*Service, *fakeRepository, *countingCache) {
	repo := newFakeRepository()
	cache := &countingCache{lists: map[int64][]CategoryResponse{}}
	svc := NewService(repo, cache)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, cache
}

func statusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return core.ToAppError(err).Status
}

func TestCreate_NameLengthBoundaries(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{name: "ab", want: http.StatusOK},
		{name: strings.Repeat("n", 100), want: http.StatusOK},
		{name: strings.Repeat("x", 101), want: http.StatusBadRequest},
		{name: "a", want: http.StatusBadRequest},
		{name: "   a   ", want: http.StatusBadRequest},
		{name: "", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("len_%d", len(tt.name)), func(t *testing.T) {
			svc, _, _ := newTestService()

			_, err := svc.Create(context.Background(), CategoryRequest{Name: tt.name})
			if got := statusOf(err); got != tt.want {
				t.Errorf("status = %d, want %d (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestCreate_TrimsName(t *testing.T) {
	svc, _, _ := newTestService()

	c, err := svc.Create(context.Background(), CategoryRequest{Name: "  Kitchen  "})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.Name != "Kitchen" {
		t.Errorf("Name = %q", c.Name)
	}
	if !c.CreatedAt.Equal(fixedNow) || !c.UpdatedAt.Equal(fixedNow) {
		t.Errorf("timestamps = %v / %v", c.CreatedAt, c.UpdatedAt)
	}
}

func TestCreate_NameUniqueness(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	active, err := svc.Create(ctx, CategoryRequest{Name: "Kitchen"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = svc.Create(ctx, CategoryRequest{Name: "kITCHEN"})
	if !errors.Is(err, core.ErrConflict) {
		t.Errorf("case-insensitive duplicate of active: err = %v, want conflict", err)
	}

	deleted, err := svc.Create(ctx, CategoryRequest{Name: "Garden"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := svc.Delete(ctx, deleted.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err = svc.Create(ctx, CategoryRequest{Name: "GARDEN"})
	if !errors.Is(err, core.ErrConflict) {
		t.Errorf("duplicate of soft-deleted: err = %v, want conflict", err)
	}

	_, err = svc.Update(ctx, active.ID, CategoryRequest{Name: "garden"})
	if !errors.Is(err, core.ErrConflict) {
		t.Errorf("rename onto soft-deleted name: err = %v, want conflict", err)
	}

	renamed, err := svc.Update(ctx, active.ID, CategoryRequest{Name: "KITCHEN"})
	if err != nil {
		t.Fatalf("recasing own name should succeed: %v", err)
	}
	if renamed.Name != "KITCHEN" {
		t.Errorf("Name = %q", renamed.Name)
	}
}

func TestDelete_CascadesToTips(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	c, err := svc.Create(ctx, CategoryRequest{Name: "Cleaning"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	earlier := fixedNow.Add(-time.Hour)
	repo.tips["t1"] = &fakeTip{categoryID: c.ID}
	repo.tips["t2"] = &fakeTip{categoryID: c.ID}
	repo.tips["t3"] = &fakeTip{categoryID: c.ID, deletedAt: &earlier}
	repo.tips["other"] = &fakeTip{categoryID: core.NewID()}

	deleteTime := fixedNow.Add(time.Minute)
	svc.now = func() time.Time { return deleteTime }

	if err := svc.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	stored := repo.categories[c.ID]
	if !stored.IsDeleted() || !stored.DeletedAt.Equal(deleteTime) {
		t.Fatalf("category DeletedAt = %v", stored.DeletedAt)
	}

	for _, id := range []string{"t1", "t2"} {
		tip := repo.tips[id]
		if tip.deletedAt == nil || !tip.deletedAt.Equal(*stored.DeletedAt) {
			t.Errorf("tip %s DeletedAt = %v, want %v", id, tip.deletedAt, stored.DeletedAt)
		}
	}
	if !repo.tips["t3"].deletedAt.Equal(earlier) {
		t.Error("already deleted tip should keep its original timestamp")
	}
	if repo.tips["other"].deletedAt != nil {
		t.Error("tip in another category was deleted")
	}

	if _, err := svc.GetByID(ctx, c.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetByID after delete: err = %v, want not found", err)
	}
	if err := svc.Delete(ctx, c.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second Delete: err = %v, want not found", err)
	}
}

func TestGetByID_InvalidID(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.GetByID(context.Background(), "not-a-uuid"); statusOf(err) != http.StatusNotFound {
		t.Errorf("err = %v, want 404", err)
	}
}

func TestList_UsesCache(t *testing.T) {
	ctx := context.Background()
	svc, repo, cache := newTestService()

	if _, err := svc.Create(ctx, CategoryRequest{Name: "Travel"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if cache.invalidated != 1 {
		t.Errorf("invalidated = %d, want 1", cache.invalidated)
	}

	first, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	second, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if repo.listCalls != 1 {
		t.Errorf("repository List calls = %d, want 1", repo.listCalls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Name != "Travel" {
		t.Errorf("lists = %v / %v", first, second)
	}
}

func TestList_InvalidationDuringReadIsNotCached(t *testing.T) {
	ctx := context.Background()
	svc, repo, cache := newTestService()

	if _, err := svc.Create(ctx, CategoryRequest{Name: "Travel"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	repo.onList = func() {
		repo.onList = nil
		copied := Category{ID: core.NewID(), Name: "Garden", CreatedAt: fixedNow, UpdatedAt: fixedNow}
		repo.categories[copied.ID] = &copied
		cache.Invalidate(ctx)
	}

	stale, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stale) != 1 {
		t.Fatalf("first list = %v", stale)
	}

	fresh, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(fresh) != 2 {
		t.Errorf("second list = %v, want both categories", fresh)
	}
	if repo.listCalls != 2 {
		t.Errorf("repository List calls = %d, want 2", repo.listCalls)
	}
}
