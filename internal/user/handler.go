// AngelaMos | 2026
// handler.go

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
	"github.com/carterperez-dev/lifehacking-api/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects r to run Authenticator. Profile creation is open
// to callers without a profile; the /me routes require one.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/User", func(r chi.Router) {
		r.Post("/", h.CreateProfile)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireProfile)

			r.Get("/me", h.GetMe)
			r.Put("/me/name", h.UpdateMyName)
			r.Delete("/me", h.DeleteMe)
		})
	})
}

// RegisterAdminRoutes expects r to already enforce the admin role.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Get("/email/{email}", h.GetUserByEmail)
		r.Get("/{userID}", h.GetUser)
		r.Put("/{userID}/name", h.UpdateUserName)
		r.Put("/{userID}/role", h.UpdateUserRole)
		r.Delete("/{userID}", h.DeleteUser)
	})
}

func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, r, err)
		return
	}

	user, err := h.service.CreateProfile(r.Context(), middleware.GetClaims(r.Context()), req)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.Created(w, ToUserResponse(user))
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetMe(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) UpdateMyName(w http.ResponseWriter, r *http.Request) {
	var req UpdateNameRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, r, err)
		return
	}

	user, err := h.service.UpdateMyName(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMe(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params, err := ParseListUsersParams(r.URL.Query())
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	users, err := h.service.ListUsers(r.Context(), params)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, users)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, r, err)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.Created(w, ToUserResponse(user))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUserByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) UpdateUserName(w http.ResponseWriter, r *http.Request) {
	var req UpdateNameRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, r, err)
		return
	}

	user, err := h.service.UpdateUserName(r.Context(), chi.URLParam(r, "userID"), req)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRoleRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, r, err)
		return
	}

	user, err := h.service.UpdateUserRole(r.Context(), chi.URLParam(r, "userID"), req)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteUser(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "userID"),
	)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.NoContent(w)
}
