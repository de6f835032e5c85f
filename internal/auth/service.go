// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
	"github.com/carterperez-dev/lifehacking-api/internal/middleware"
)

type IdentityVerifier interface {
	Verify(token string) (*Identity, error)
}

// UserProvider resolves the internal profile that belongs to an external
// identity. It returns core.ErrNotFound when no profile exists yet.
type UserProvider interface {
	ResolvePrincipal(
		ctx context.Context,
		externalAuthID string,
	) (userID, role string, err error)
}

type Service struct {
	verifier     IdentityVerifier
	userProvider UserProvider
}

func NewService(verifier IdentityVerifier, userProvider UserProvider) *Service {
	return &Service{
		verifier:     verifier,
		userProvider: userProvider,
	}
}

// VerifyAccessToken implements middleware.TokenVerifier. Callers without a
// profile are still authenticated, with empty UserID and Role.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	ctx, span := core.StartSpan(ctx, "auth.VerifyAccessToken")
	var err error
	defer func() { core.EndSpan(span, err) }()

	identity, err := s.verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	claims := &middleware.AccessTokenClaims{
		Subject: identity.Subject,
		Email:   identity.Email,
		Name:    identity.Name,
	}

	userID, role, lookupErr := s.userProvider.ResolvePrincipal(ctx, identity.Subject)
	switch {
	case lookupErr == nil:
		claims.UserID = userID
		claims.Role = role
	case errors.Is(lookupErr, core.ErrNotFound):
	default:
		err = fmt.Errorf("resolve principal: %w", lookupErr)
		return nil, err
	}

	return claims, nil
}
