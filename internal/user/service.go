// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/lifehacking-api/internal/audit"
	"github.com/carterperez-dev/lifehacking-api/internal/auth"
	"github.com/carterperez-dev/lifehacking-api/internal/core"
	"github.com/carterperez-dev/lifehacking-api/internal/middleware"
	"github.com/carterperez-dev/lifehacking-api/internal/validation"
)

type Service struct {
	repo    Repository
	auditor audit.Logger
	now     func() time.Time
}

func NewService(repo Repository, auditor audit.Logger) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{
		repo:    repo,
		auditor: auditor,
		now:     time.Now,
	}
}

// ResolvePrincipal maps an identity-token subject to the profile id and
// role used for authorization.
func (s *Service) ResolvePrincipal(
	ctx context.Context,
	externalAuthID string,
) (string, string, error) {
	user, err := s.repo.GetByExternalAuthID(ctx, externalAuthID)
	if err != nil {
		return "", "", err
	}
	return user.ID, user.Role, nil
}

// CreateProfile provisions the caller's own profile from the verified
// token. The email always comes from the token, never from the body.
func (s *Service) CreateProfile(
	ctx context.Context,
	claims *middleware.AccessTokenClaims,
	req CreateProfileRequest,
) (*User, error) {
	if claims == nil {
		return nil, core.UnauthorizedError("")
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if claims.UserID != "" {
		return nil, core.ConflictError("A user profile already exists for this account.")
	}

	if claims.Email == "" {
		return nil, core.FieldError("email", "the access token carries no email claim")
	}

	return s.create(ctx, &User{
		Email:          strings.ToLower(claims.Email),
		Name:           req.Name,
		ExternalAuthID: claims.Subject,
		Role:           RoleUser,
	})
}

// CreateUser lets an administrator provision a profile ahead of the
// user's first sign-in.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	req.ExternalAuthID = strings.TrimSpace(req.ExternalAuthID)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = RoleUser
	}

	return s.create(ctx, &User{
		Email:          req.Email,
		Name:           req.Name,
		ExternalAuthID: req.ExternalAuthID,
		Role:           role,
	})
}

func (s *Service) create(ctx context.Context, user *User) (*User, error) {
	now := s.now().UTC()
	user.ID = core.NewID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			s.auditor.Log(ctx, audit.Event{
				Type:       audit.EventUserCreated,
				Outcome:    audit.OutcomeFailure,
				Properties: map[string]any{"reason": "duplicate"},
			})
			return nil, core.ConflictError("A user with this email or external id already exists.")
		}
		return nil, err
	}

	s.auditor.Log(ctx, audit.Event{
		Type:       audit.EventUserCreated,
		Outcome:    audit.OutcomeSuccess,
		SubjectID:  user.ID,
		Properties: map[string]any{"role": user.Role},
	})

	return user, nil
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}
	return s.GetUser(ctx, userID)
}

func (s *Service) UpdateMyName(
	ctx context.Context,
	userID string,
	req UpdateNameRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}
	return s.UpdateUserName(ctx, userID, req)
}

func (s *Service) DeleteMe(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("delete me: %w", core.ErrUnauthorized)
	}
	return s.delete(ctx, userID)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	id, ok := core.ParseID(id)
	if !ok {
		return nil, core.NotFoundError("user")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err)
	}

	return user, nil
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, core.NotFoundError("user")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, notFoundAs(err)
	}

	return user, nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) (core.PagedResponse[UserResponse], error) {
	users, total, err := s.repo.List(ctx, params)
	if err != nil {
		return core.PagedResponse[UserResponse]{}, err
	}

	return core.NewPagedResponse(ToUserResponseList(users), total, params.Page), nil
}

func (s *Service) UpdateUserName(
	ctx context.Context,
	id string,
	req UpdateNameRequest,
) (*User, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, notFoundAs(err)
	}

	s.auditor.Log(ctx, audit.Event{
		Type:       audit.EventUserUpdated,
		Outcome:    audit.OutcomeSuccess,
		SubjectID:  user.ID,
		Properties: map[string]any{"field": "name"},
	})

	return user, nil
}

func (s *Service) UpdateUserRole(
	ctx context.Context,
	id string,
	req UpdateUserRoleRequest,
) (*User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := user.Role
	user.Role = req.Role
	user.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, notFoundAs(err)
	}

	s.auditor.Log(ctx, audit.Event{
		Type:      audit.EventUserRoleChanged,
		Outcome:   audit.OutcomeSuccess,
		SubjectID: user.ID,
		Properties: map[string]any{
			"previous_role": previous,
			"role":          user.Role,
		},
	})

	return user, nil
}

// DeleteUser is the administrative delete. Administrators cannot remove
// their own account through it.
func (s *Service) DeleteUser(ctx context.Context, requesterID, targetID string) error {
	target, ok := core.ParseID(targetID)
	if !ok {
		return core.NotFoundError("user")
	}

	if requester, _ := core.ParseID(requesterID); requester == target {
		s.auditor.Log(ctx, audit.Event{
			Type:       audit.EventUserDeleted,
			Outcome:    audit.OutcomeFailure,
			SubjectID:  target,
			Properties: map[string]any{"reason": "self_delete"},
		})
		return core.ForbiddenError("Administrators cannot delete their own account.")
	}

	return s.delete(ctx, target)
}

func (s *Service) delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id, s.now().UTC()); err != nil {
		return notFoundAs(err)
	}

	s.auditor.Log(ctx, audit.Event{
		Type:      audit.EventUserDeleted,
		Outcome:   audit.OutcomeSuccess,
		SubjectID: id,
	})

	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func notFoundAs(err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return core.NotFoundError("user")
	}
	return err
}

var _ auth.UserProvider = (*Service)(nil)
