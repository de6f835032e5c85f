// AngelaMos | 2026
// dto.go

package user

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

type CreateProfileRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateUserRequest struct {
	Email          string `json:"email"          validate:"required,email,max=255"`
	Name           string `json:"name"           validate:"required,min=1,max=100"`
	ExternalAuthID string `json:"externalAuthId" validate:"required,max=255"`
	Role           string `json:"role"           validate:"omitempty,oneof=user admin"`
}

type UpdateNameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	ExternalAuthID string    `json:"externalAuthId"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type ListUsersParams struct {
	Page   core.PageRequest
	Search string
	Role   string
}

func ParseListUsersParams(q url.Values) (ListUsersParams, error) {
	fields := core.FieldErrors{}

	page, err := core.ParsePageRequest(q)
	var appErr *core.AppError
	if errors.As(err, &appErr) {
		fields.Merge(appErr.Fields)
	}

	params := ListUsersParams{
		Page:   page,
		Search: strings.TrimSpace(q.Get("search")),
		Role:   strings.ToLower(strings.TrimSpace(q.Get("role"))),
	}

	if params.Role != "" && params.Role != RoleUser && params.Role != RoleAdmin {
		fields.Add("role", "must be one of: user, admin")
	}
	if len(params.Search) > 255 {
		fields.Add("search", "must be at most 255 characters")
	}

	return params, fields.Err()
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		ExternalAuthID: u.ExternalAuthID,
		Role:           u.Role,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
