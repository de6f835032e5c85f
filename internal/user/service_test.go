// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/carterperez-dev/lifehacking-api/internal/audit"
	"github.com/carterperez-dev/lifehacking-api/internal/core"
	"github.com/carterperez-dev/lifehacking-api/internal/middleware"
)

type fakeRepository struct {
	mu               sync.Mutex
	users            map[string]*User
	favoritesRemoved map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:            map[string]*User{},
		favoritesRemoved: map[string]bool{},
	}
}

func (f *fakeRepository) Create(_ context.Context, u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.IsDeleted() {
			continue
		}
		if strings.EqualFold(existing.Email, u.Email) || existing.ExternalAuthID == u.ExternalAuthID {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeRepository) find(match func(*User) bool) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if !u.IsDeleted() && match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	return f.find(func(u *User) bool { return u.ID == id })
}

func (f *fakeRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	return f.find(func(u *User) bool { return strings.EqualFold(u.Email, email) })
}

func (f *fakeRepository) GetByExternalAuthID(_ context.Context, externalAuthID string) (*User, error) {
	return f.find(func(u *User) bool { return u.ExternalAuthID == externalAuthID })
}

func (f *fakeRepository) Update(_ context.Context, u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.users[u.ID]
	if !ok || existing.IsDeleted() {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeRepository) SoftDelete(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok || u.IsDeleted() {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	u.DeletedAt = &at
	f.favoritesRemoved[id] = true
	return nil
}

func (f *fakeRepository) List(_ context.Context, params ListUsersParams) ([]User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []User
	for _, u := range f.users {
		if u.IsDeleted() || (params.Role != "" && u.Role != params.Role) {
			continue
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeRepository) Count(ctx context.Context) (int, error) {
	_, total, err := f.List(ctx, ListUsersParams{})
	return total, err
}

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newTestService() (*Service, *fakeRepository, *audit.Recorder) {
	repo := newFakeRepository()
	recorder := &audit.Recorder{}
	svc := NewService(repo, recorder)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, recorder
}

func statusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return core.ToAppError(err).Status
}

func newClaims() *middleware.AccessTokenClaims {
	return &middleware.AccessTokenClaims{Subject: "ext-42", Email: "Ada@Example.com"}
}

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _, recorder := newTestService()

	u, err := svc.CreateProfile(ctx, newClaims(), CreateProfileRequest{Name: "  Ada  "})
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	if u.Email != "ada@example.com" || u.Name != "Ada" || u.Role != RoleUser || u.ExternalAuthID != "ext-42" {
		t.Errorf("user = %+v", u)
	}

	id, role, err := svc.ResolvePrincipal(ctx, "ext-42")
	if err != nil || id != u.ID || role != RoleUser {
		t.Errorf("ResolvePrincipal() = %q, %q, %v", id, role, err)
	}

	events := recorder.Events()
	if len(events) != 1 || events[0].Type != audit.EventUserCreated || events[0].SubjectID != u.ID {
		t.Errorf("events = %+v", events)
	}
}

func TestCreateProfile_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		claims *middleware.AccessTokenClaims
		req    CreateProfileRequest
		want   int
	}{
		{
			name:   "already provisioned",
			claims: &middleware.AccessTokenClaims{Subject: "ext-1", Email: "a@b.co", UserID: core.NewID()},
			req:    CreateProfileRequest{Name: "Ada"},
			want:   http.StatusConflict,
		},
		{
			name:   "no email claim",
			claims: &middleware.AccessTokenClaims{Subject: "ext-1"},
			req:    CreateProfileRequest{Name: "Ada"},
			want:   http.StatusBadRequest,
		},
		{
			name:   "blank name",
			claims: newClaims(),
			req:    CreateProfileRequest{Name: "   "},
			want:   http.StatusBadRequest,
		},
		{
			name: "no claims",
			req:  CreateProfileRequest{Name: "Ada"},
			want: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService()

			_, err := svc.CreateProfile(context.Background(), tt.claims, tt.req)
			if got := statusOf(err); got != tt.want {
				t.Errorf("status = %d, want %d (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc, _, recorder := newTestService()

	req := CreateUserRequest{Email: "grace@example.com", Name: "Grace", ExternalAuthID: "ext-7"}
	if _, err := svc.CreateUser(ctx, req); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	req.Email = "GRACE@example.com"
	req.ExternalAuthID = "ext-8"
	if _, err := svc.CreateUser(ctx, req); statusOf(err) != http.StatusConflict {
		t.Errorf("duplicate email: status = %d, want 409", statusOf(err))
	}

	events := recorder.Events()
	if events[len(events)-1].Outcome != audit.OutcomeFailure {
		t.Errorf("last event = %+v, want failure", events[len(events)-1])
	}
}

func TestDeleteMe_RemovesProfileAndFavorites(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	u, err := svc.CreateProfile(ctx, newClaims(), CreateProfileRequest{Name: "Ada"})
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	if err := svc.DeleteMe(ctx, u.ID); err != nil {
		t.Fatalf("DeleteMe() error = %v", err)
	}

	if !repo.favoritesRemoved[u.ID] {
		t.Error("favorites were not removed")
	}
	if _, err := svc.GetMe(ctx, u.ID); statusOf(err) != http.StatusNotFound {
		t.Errorf("GetMe after delete: status = %d", statusOf(err))
	}
	if _, _, err := svc.ResolvePrincipal(ctx, "ext-42"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("ResolvePrincipal after delete: err = %v", err)
	}

	if _, err := svc.CreateProfile(ctx, newClaims(), CreateProfileRequest{Name: "Ada again"}); err != nil {
		t.Errorf("re-creating after delete: %v", err)
	}
}

func TestDeleteUser_SelfForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _, recorder := newTestService()

	admin, err := svc.CreateUser(ctx, CreateUserRequest{
		Email: "root@example.com", Name: "Root", ExternalAuthID: "ext-root", Role: RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if err := svc.DeleteUser(ctx, admin.ID, admin.ID); statusOf(err) != http.StatusForbidden {
		t.Errorf("self delete: status = %d, want 403", statusOf(err))
	}
	if err := svc.DeleteUser(ctx, admin.ID, core.NewID()); statusOf(err) != http.StatusNotFound {
		t.Errorf("unknown user: status = %d, want 404", statusOf(err))
	}

	types := recorder.Types()
	if types[len(types)-1] != audit.EventUserDeleted {
		t.Errorf("types = %v", types)
	}
}

func TestDeleteUser_SelfForbiddenInAnySpelling(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	admin, err := svc.CreateUser(ctx, CreateUserRequest{
		Email: "root@example.com", Name: "Root", ExternalAuthID: "ext-root", Role: RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{name: "upper case", target: strings.ToUpper(admin.ID), want: http.StatusForbidden},
		{name: "upper case requester", target: admin.ID, want: http.StatusForbidden},
		{name: "braced", target: "{" + admin.ID + "}", want: http.StatusNotFound},
		{name: "hyphenless", target: strings.ReplaceAll(admin.ID, "-", ""), want: http.StatusNotFound},
		{name: "urn", target: "urn:uuid:" + admin.ID, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requester := admin.ID
			if tt.name == "upper case requester" {
				requester = strings.ToUpper(admin.ID)
			}

			if err := svc.DeleteUser(ctx, requester, tt.target); statusOf(err) != tt.want {
				t.Errorf("status = %d, want %d (err %v)", statusOf(err), tt.want, err)
			}
		})
	}

	if _, err := svc.GetUser(ctx, admin.ID); err != nil {
		t.Errorf("admin should still exist: %v", err)
	}
}

func TestUpdateUserRole(t *testing.T) {
	ctx := context.Background()
	svc, _, recorder := newTestService()

	u, err := svc.CreateProfile(ctx, newClaims(), CreateProfileRequest{Name: "Ada"})
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	updated, err := svc.UpdateUserRole(ctx, u.ID, UpdateUserRoleRequest{Role: RoleAdmin})
	if err != nil {
		t.Fatalf("UpdateUserRole() error = %v", err)
	}
	if !updated.IsAdmin() {
		t.Errorf("role = %q", updated.Role)
	}

	last := recorder.Events()[len(recorder.Events())-1]
	if last.Type != audit.EventUserRoleChanged || last.Properties["previous_role"] != RoleUser {
		t.Errorf("event = %+v", last)
	}

	if _, err := svc.UpdateUserRole(ctx, u.ID, UpdateUserRoleRequest{Role: "owner"}); statusOf(err) != http.StatusBadRequest {
		t.Errorf("invalid role: status = %d", statusOf(err))
	}
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	if _, err := svc.CreateProfile(ctx, newClaims(), CreateProfileRequest{Name: "Ada"}); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	if _, err := svc.GetUserByEmail(ctx, "ADA@example.COM"); err != nil {
		t.Errorf("GetUserByEmail() error = %v", err)
	}
	if _, err := svc.GetUserByEmail(ctx, "nobody@example.com"); statusOf(err) != http.StatusNotFound {
		t.Errorf("unknown email: status = %d", statusOf(err))
	}
}

func TestParseListUsersParams(t *testing.T) {
	params, err := ParseListUsersParams(url.Values{"role": {"Admin"}, "search": {" ada "}})
	if err != nil {
		t.Fatalf("ParseListUsersParams() error = %v", err)
	}
	if params.Role != RoleAdmin || params.Search != "ada" || params.Page.PageSize != core.DefaultPageSize {
		t.Errorf("params = %+v", params)
	}

	if _, err := ParseListUsersParams(url.Values{"role": {"owner"}}); statusOf(err) != http.StatusBadRequest {
		t.Errorf("bad role: status = %d", statusOf(err))
	}
}
