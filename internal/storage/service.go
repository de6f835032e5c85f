// AngelaMos | 2026
// service.go

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
	"github.com/carterperez-dev/lifehacking-api/internal/metrics"
)

var ErrStorageDisabled = errors.New("image storage is not configured")

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

const (
	FolderCategories = "categories"
	FolderTips       = "tips"
)

type ImageService struct {
	store    ObjectStore
	breaker  *gobreaker.CircuitBreaker[string]
	maxBytes int64
	now      func() time.Time
}

// NewImageService accepts a nil store, in which case every upload fails
// with a 503.
func NewImageService(store ObjectStore, maxBytes int64) *ImageService {
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "object-store",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &ImageService{
		store:    store,
		breaker:  breaker,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

func (s *ImageService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload validates the content by sniffing its bytes, never trusting the
// client supplied content type, and stores it under folder.
func (s *ImageService) Upload(
	ctx context.Context,
	folder, fileName string,
	body io.Reader,
) (*Image, error) {
	ctx, span := core.StartSpan(ctx, "storage.Upload")
	var err error
	defer func() { core.EndSpan(span, err) }()

	data, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		err = fmt.Errorf("read upload: %w", err)
		return nil, err
	}

	if len(data) == 0 {
		metrics.RecordImageUpload(folder, "rejected", 0)
		err = core.FieldError("file", "must not be empty")
		return nil, err
	}

	if int64(len(data)) > s.maxBytes {
		metrics.RecordImageUpload(folder, "rejected", 0)
		err = core.FieldError(
			"file",
			fmt.Sprintf("must be at most %d bytes", s.maxBytes),
		)
		return nil, err
	}

	mime := mimetype.Detect(data)
	contentType := strings.SplitN(mime.String(), ";", 2)[0]
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		metrics.RecordImageUpload(folder, "rejected", 0)
		err = core.FieldError("file", "must be a JPEG, PNG, GIF or WebP image")
		return nil, err
	}

	if s.store == nil {
		err = core.UnavailableError(ErrStorageDisabled, "Image uploads are not enabled.")
		return nil, err
	}

	key := path.Join(folder, uuid.New().String()+ext)

	imageURL, err := s.breaker.Execute(func() (string, error) {
		return s.store.Put(ctx, key, data, contentType)
	})
	if err != nil {
		metrics.RecordImageUpload(folder, "failed", 0)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = core.UnavailableError(err, "Image storage is temporarily unavailable.")
			return nil, err
		}
		err = fmt.Errorf("store image: %w", err)
		return nil, err
	}

	metrics.RecordImageUpload(folder, "success", int64(len(data)))

	return &Image{
		URL:              imageURL,
		StoragePath:      key,
		OriginalFileName: sanitizeFileName(fileName),
		ContentType:      contentType,
		SizeBytes:        int64(len(data)),
		UploadedAt:       s.now().UTC(),
	}, nil
}

const maxFileNameBytes = 255

func sanitizeFileName(name string) string {
	name = strings.ToValidUTF8(name, "")
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return "upload"
	}

	if len(name) > maxFileNameBytes {
		cut := maxFileNameBytes
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	return name
}
