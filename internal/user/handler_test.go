// AngelaMos | 2026
// handler_test.go

package user

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/lifehacking-api/internal/middleware"
)

func withClaims(claims *middleware.AccessTokenClaims) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithClaims(r.Context(), claims)))
		})
	}
}

func TestHandler_ProfileLifecycle(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewHandler(svc)
	claims := newClaims()

	r := chi.NewRouter()
	r.Use(withClaims(claims))
	r.Route("/api", h.RegisterRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/User/me", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("me without profile: status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/User", strings.NewReader(`{"name":"Ada"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body.String())
	}

	id, role, err := svc.ResolvePrincipal(t.Context(), claims.Subject)
	if err != nil {
		t.Fatalf("ResolvePrincipal() error = %v", err)
	}
	claims.UserID, claims.Role = id, role

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/User", strings.NewReader(`{"name":"Ada"}`)))
	if rec.Code != http.StatusConflict {
		t.Errorf("second create: status = %d, want 409", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/User/me/name", strings.NewReader(`{"name":"Ada L."}`)))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"name":"Ada L."`) {
		t.Errorf("rename: status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/User/me", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: status = %d", rec.Code)
	}
}

func TestHandler_AdminCannotDeleteSelf(t *testing.T) {
	svc, _, _ := newTestService()
	admin, err := svc.CreateUser(t.Context(), CreateUserRequest{
		Email: "root@example.com", Name: "Root", ExternalAuthID: "ext-root", Role: RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	r := chi.NewRouter()
	r.Use(withClaims(&middleware.AccessTokenClaims{Subject: "ext-root", UserID: admin.ID, Role: RoleAdmin}))
	r.Route("/api/admin", NewHandler(svc).RegisterAdminRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+admin.ID, nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users/email/ROOT@example.com", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("by email: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users?role=admin", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"totalItems":1`) {
		t.Errorf("list: status = %d, body %s", rec.Code, rec.Body.String())
	}
}
