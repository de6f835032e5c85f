// AngelaMos | 2026
// response.go

package core

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

const (
	maxBodyBytes       = 1 << 20
	problemContentType = "application/problem+json"
)

var problemTypes = map[int]string{
	http.StatusBadRequest:            "https://tools.ietf.org/html/rfc9110#section-15.5.1",
	http.StatusUnauthorized:          "https://tools.ietf.org/html/rfc9110#section-15.5.2",
	http.StatusForbidden:             "https://tools.ietf.org/html/rfc9110#section-15.5.4",
	http.StatusNotFound:              "https://tools.ietf.org/html/rfc9110#section-15.5.5",
	http.StatusConflict:              "https://tools.ietf.org/html/rfc9110#section-15.5.10",
	http.StatusRequestEntityTooLarge: "https://tools.ietf.org/html/rfc9110#section-15.5.14",
	http.StatusTooManyRequests:       "https://tools.ietf.org/html/rfc6585#section-4",
	http.StatusInternalServerError:   "https://tools.ietf.org/html/rfc9110#section-15.6.1",
	http.StatusServiceUnavailable:    "https://tools.ietf.org/html/rfc9110#section-15.6.4",
}

// Problem is an RFC 7807 problem details document.
type Problem struct {
	Type          string              `json:"type"`
	Title         string              `json:"title"`
	Status        int                 `json:"status"`
	Detail        string              `json:"detail,omitempty"`
	Instance      string              `json:"instance,omitempty"`
	CorrelationID string              `json:"correlationId,omitempty"`
	Errors        map[string][]string `json:"errors,omitempty"`
}

func NewProblem(r *http.Request, appErr *AppError) Problem {
	typ, ok := problemTypes[appErr.Status]
	if !ok {
		typ = "about:blank"
	}

	return Problem{
		Type:          typ,
		Title:         http.StatusText(appErr.Status),
		Status:        appErr.Status,
		Detail:        appErr.Message,
		Instance:      r.URL.Path,
		CorrelationID: CorrelationID(r.Context()),
		Errors:        appErr.Fields,
	}
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(data)
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// JSONError writes err as a problem document. Infrastructure failures are
// logged with the correlation id and returned with a generic detail.
func JSONError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := ToAppError(err)

	if appErr.Status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"correlation_id", CorrelationID(r.Context()),
		)
	}

	WriteProblem(w, NewProblem(r, appErr))
}

func WriteProblem(w http.ResponseWriter, problem Problem) {
	w.Header().Set("Content-Type", problemContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(problem.Status)

	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(problem)
}

func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	JSONError(w, r, BadRequestError(message))
}

func NotFound(w http.ResponseWriter, r *http.Request, resource string) {
	JSONError(w, r, NotFoundError(resource))
}

func Unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	JSONError(w, r, UnauthorizedError(message))
}

func Forbidden(w http.ResponseWriter, r *http.Request, message string) {
	JSONError(w, r, ForbiddenError(message))
}

func InternalServerError(w http.ResponseWriter, r *http.Request, err error) {
	JSONError(w, r, InternalError(err))
}

// DecodeJSON reads a size-limited JSON body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return NewAppError(
				err,
				"The request body is too large.",
				http.StatusRequestEntityTooLarge,
				"BODY_TOO_LARGE",
			)
		case errors.Is(err, io.EOF):
			return BadRequestError("The request body is empty.")
		default:
			return BadRequestError("The request body is not valid JSON.")
		}
	}

	return nil
}
