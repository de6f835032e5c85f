// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/carterperez-dev/lifehacking-api/internal/audit"
	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UserRoleKey contextKey = "user_role"
	ClaimsKey   contextKey = "jwt_claims"
)

const RoleAdmin = "admin"

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

// AccessTokenClaims is the authenticated principal. Subject and Email come
// from the identity token; UserID and Role are empty until the caller has
// created a profile.
type AccessTokenClaims struct {
	Subject string
	Email   string
	Name    string
	UserID  string
	Role    string
}

func Authenticator(
	verifier TokenVerifier,
	auditor audit.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				auditAuthFailure(r, auditor, "missing_token")
				core.JSONError(
					w,
					r,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			claims, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				handleAuthError(w, r, auditor, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin must run after Authenticator. The 403 detail never says
// whether the addressed resource exists.
func RequireAdmin(auditor audit.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())

			if claims == nil {
				core.JSONError(
					w,
					r,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if claims.Role != RoleAdmin {
				auditor.Log(r.Context(), audit.Event{
					Type:    audit.EventAdminDenied,
					Outcome: audit.OutcomeFailure,
					Properties: map[string]any{
						"method": r.Method,
						"path":   r.URL.Path,
						"role":   claims.Role,
					},
				})
				core.JSONError(w, r, core.ForbiddenError(""))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireProfile rejects authenticated callers that have not created a
// user profile yet.
func RequireProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())

		if claims == nil {
			core.JSONError(
				w,
				r,
				core.UnauthorizedError("authentication required"),
			)
			return
		}

		if claims.UserID == "" {
			core.JSONError(
				w,
				r,
				core.ForbiddenError("a user profile is required"),
			)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(
	w http.ResponseWriter,
	r *http.Request,
	auditor audit.Logger,
	err error,
) {
	switch {
	case errors.Is(err, core.ErrTokenExpired):
		auditAuthFailure(r, auditor, "token_expired")
		core.JSONError(w, r, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenInvalid), errors.Is(err, core.ErrUnauthorized):
		auditAuthFailure(r, auditor, "token_invalid")
		core.JSONError(w, r, core.TokenInvalidError())
	default:
		core.JSONError(w, r, err)
	}
}

func auditAuthFailure(r *http.Request, auditor audit.Logger, reason string) {
	auditor.Log(r.Context(), audit.Event{
		Type:    audit.EventAuthFailure,
		Outcome: audit.OutcomeFailure,
		Properties: map[string]any{
			"reason": reason,
			"path":   r.URL.Path,
		},
	})
}

func actorID(claims *AccessTokenClaims) string {
	if claims.UserID != "" {
		return claims.UserID
	}
	return claims.Subject
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func GetUserRole(ctx context.Context) string {
	if role, ok := ctx.Value(UserRoleKey).(string); ok {
		return role
	}
	return ""
}

func GetClaims(ctx context.Context) *AccessTokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*AccessTokenClaims); ok {
		return claims
	}
	return nil
}

func WithClaims(ctx context.Context, claims *AccessTokenClaims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
	ctx = context.WithValue(ctx, ClaimsKey, claims)
	return audit.ContextWithActor(ctx, actorID(claims))
}

func IsAdmin(ctx context.Context) bool {
	return GetUserRole(ctx) == RoleAdmin
}
