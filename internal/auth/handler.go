// AngelaMos | 2026
// handler.go

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

type Handler struct {
	issuer *Issuer
}

func NewHandler(issuer *Issuer) *Handler {
	return &Handler{issuer: issuer}
}

// RegisterRoutes publishes the local signing key. Nothing is mounted when
// tokens come exclusively from an external provider.
func (h *Handler) RegisterRoutes(r chi.Router) {
	if h.issuer == nil {
		return
	}
	r.Get("/.well-known/jwks.json", h.JWKS)
}

func (h *Handler) JWKS(w http.ResponseWriter, r *http.Request) {
	body, err := json.Marshal(h.issuer.publicJWKS)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // best-effort response write
	_, _ = w.Write(body)
}
