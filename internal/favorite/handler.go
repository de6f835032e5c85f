// AngelaMos | 2026
// handler.go

package favorite

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

// RegisterRoutes expects r to run Authenticator and RequireProfile.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/favorites", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/merge", h.Merge)
		r.Get("/{tipId}", h.Status)
		r.Post("/{tipId}", h.Add)
		r.Delete("/{tipId}", h.Remove)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := core.ParsePageRequest(r.URL.Query())
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	favorites, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()), page)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, favorites)
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.IsFavorite(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tipId"),
	)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, status)
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	fav, err := h.service.Add(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tipId"),
	)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.Created(w, fav)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	err := h.service.Remove(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tipId"),
	)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Merge(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, r, err)
		return
	}

	resp, err := h.service.Merge(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, resp)
}
