// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carterperez-dev/lifehacking-api/internal/audit"
	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

type stubVerifier struct {
	claims map[string]*AccessTokenClaims
	err    error
}

func (s stubVerifier) VerifyAccessToken(
	_ context.Context,
	token string,
) (*AccessTokenClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	claims, ok := s.claims[token]
	if !ok {
		return nil, fmt.Errorf("parse token: %w", core.ErrTokenInvalid)
	}
	return claims, nil
}

func newStubVerifier() stubVerifier {
	return stubVerifier{claims: map[string]*AccessTokenClaims{
		"admin-token": {Subject: "ext-admin", UserID: "u-admin", Role: RoleAdmin},
		"user-token":  {Subject: "ext-user", UserID: "u-user", Role: "user"},
		"new-token":   {Subject: "ext-new", Email: "new@example.com"},
	}}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminChain(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantEvent  audit.EventType
	}{
		{name: "no token", header: "", wantStatus: http.StatusUnauthorized, wantEvent: audit.EventAuthFailure},
		{name: "wrong scheme", header: "Basic admin-token", wantStatus: http.StatusUnauthorized, wantEvent: audit.EventAuthFailure},
		{name: "invalid token", header: "Bearer forged", wantStatus: http.StatusUnauthorized, wantEvent: audit.EventAuthFailure},
		{name: "non admin", header: "Bearer user-token", wantStatus: http.StatusForbidden, wantEvent: audit.EventAdminDenied},
		{name: "admin", header: "Bearer admin-token", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &audit.Recorder{}
			handler := Authenticator(newStubVerifier(), rec)(RequireAdmin(rec)(okHandler()))

			req := httptest.NewRequest(http.MethodDelete, "/api/admin/categories/123", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			types := rec.Types()
			if tt.wantEvent == "" {
				if len(types) != 0 {
					t.Errorf("unexpected audit events %v", types)
				}
				return
			}
			if len(types) != 1 || types[0] != tt.wantEvent {
				t.Errorf("audit events = %v, want [%s]", types, tt.wantEvent)
			}
		})
	}
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	handler := Authenticator(
		stubVerifier{err: fmt.Errorf("verify: %w", core.ErrTokenExpired)},
		audit.Nop{},
	)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/User/me", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticator_LookupFailureIsServerError(t *testing.T) {
	handler := Authenticator(
		stubVerifier{err: errors.New("connection refused")},
		audit.Nop{},
	)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/User/me", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestAuthenticator_SetsContext(t *testing.T) {
	var claims *AccessTokenClaims
	var actor string

	handler := Authenticator(newStubVerifier(), audit.Nop{})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims = GetClaims(r.Context())
			actor = audit.ActorFromContext(r.Context())
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/User/me", nil)
	req.Header.Set("Authorization", "bearer user-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if claims == nil || claims.UserID != "u-user" {
		t.Fatalf("claims = %+v", claims)
	}
	if actor != "u-user" {
		t.Errorf("actor = %q", actor)
	}
}

func TestRequireProfile(t *testing.T) {
	handler := Authenticator(newStubVerifier(), audit.Nop{})(RequireProfile(okHandler()))

	tests := []struct {
		token string
		want  int
	}{
		{token: "new-token", want: http.StatusForbidden},
		{token: "user-token", want: http.StatusOK},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/me/favorites/abc", nil)
		req.Header.Set("Authorization", "Bearer "+tt.token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.token, w.Code, tt.want)
		}
	}
}
