// AngelaMos | 2026
// handler.go

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public category endpoints. tipsByCategory
// serves the paged tip listing of a single category.
func (h *Handler) RegisterRoutes(r chi.Router, tipsByCategory http.HandlerFunc) {
	r.Route("/Category", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/tips", tipsByCategory)
	})
}

// RegisterAdminRoutes expects r to already enforce the admin role.
func (h *Handler) RegisterAdminRoutes(r chi.Router, uploadImage http.HandlerFunc) {
	r.Route("/categories", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Post("/images", uploadImage)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, CategoryListResponse{Items: categories})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, ToCategoryResponse(category))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, r, err)
		return
	}

	category, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.Created(w, ToCategoryResponse(category))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, r, err)
		return
	}

	category, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, ToCategoryResponse(category))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.NoContent(w)
}
