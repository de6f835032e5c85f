// AngelaMos | 2026
// handler.go

package storage

import (
	"errors"
	"net/http"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

const multipartOverhead = 1 << 20

type Handler struct {
	service *ImageService
}

func NewHandler(service *ImageService) *Handler {
	return &Handler{service: service}
}

// Upload returns a handler that accepts a multipart "file" field and
// stores it under folder.
func (h *Handler) Upload(folder string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.service.MaxBytes()+multipartOverhead)

		file, header, err := r.FormFile("file")
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				core.JSONError(w, r, core.NewAppError(
					err,
					"The uploaded file is too large.",
					http.StatusRequestEntityTooLarge,
					"BODY_TOO_LARGE",
				))
				return
			}
			core.JSONError(w, r, core.FieldError("file", "is required"))
			return
		}
		defer file.Close()

		img, err := h.service.Upload(r.Context(), folder, header.Filename, file)
		if err != nil {
			core.JSONError(w, r, err)
			return
		}

		core.Created(w, ToDTO(img))
	}
}
