// AngelaMos | 2026
// handler.go

package tip

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

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/Tip", func(r chi.Router) {
		r.Get("/", h.Search)
		r.Get("/{id}", h.Get)
	})
}

// RegisterAdminRoutes expects r to already enforce the admin role.
func (h *Handler) RegisterAdminRoutes(r chi.Router, uploadImage http.HandlerFunc) {
	r.Route("/tips", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Post("/images", uploadImage)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	params, err := ParseSearchParams(r.URL.Query())
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	page, err := h.service.Search(r.Context(), params)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, page)
}

// ListByCategory serves GET /Category/{id}/tips.
func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	params, err := ParseSearchParams(r.URL.Query())
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	page, err := h.service.ListByCategory(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, page)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tip, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, ToTipResponse(tip))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req TipRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, r, err)
		return
	}

	tip, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.Created(w, ToTipResponse(tip))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req TipRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, r, err)
		return
	}

	tip, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, ToTipResponse(tip))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.NoContent(w)
}
