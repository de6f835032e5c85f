// AngelaMos | 2026
// correlation.go

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

const maxCorrelationIDLength = 64

// CorrelationID accepts a well-formed X-Correlation-ID from the caller or
// mints a new one, then echoes it on the response.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(core.CorrelationIDHeader)
		if !ValidCorrelationID(id) {
			id = uuid.NewString()
		}

		w.Header().Set(core.CorrelationIDHeader, id)

		ctx := core.WithCorrelationID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ValidCorrelationID allows at most 64 characters of [A-Za-z0-9._-].
func ValidCorrelationID(id string) bool {
	if id == "" || len(id) > maxCorrelationIDLength {
		return false
	}

	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9',
			c == '.', c == '_', c == '-':
		default:
			return false
		}
	}

	return true
}
