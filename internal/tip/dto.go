// AngelaMos | 2026
// dto.go

package tip

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
	"github.com/carterperez-dev/lifehacking-api/internal/storage"
)

type StepRequest struct {
	Description string `json:"description" validate:"required,min=10,max=500"`
}

type TipRequest struct {
	Title       string            `json:"title"       validate:"required,min=5,max=200"`
	Description string            `json:"description" validate:"required,min=10,max=2000"`
	Steps       []StepRequest     `json:"steps"       validate:"required,min=1,max=20,dive"`
	CategoryID  string            `json:"categoryId"  validate:"required,uuid"`
	Tags        []string          `json:"tags"        validate:"max=10,dive,min=1,max=50"`
	VideoURL    string            `json:"videoUrl"    validate:"omitempty,max=2048,video_url"`
	Image       *storage.ImageDTO `json:"image"       validate:"omitempty"`
}

type StepResponse struct {
	StepNumber  int    `json:"stepNumber"`
	Description string `json:"description"`
}

type TipResponse struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Steps        []StepResponse    `json:"steps"`
	CategoryID   string            `json:"categoryId"`
	CategoryName string            `json:"categoryName"`
	Tags         []string          `json:"tags"`
	VideoURL     string            `json:"videoUrl,omitempty"`
	Image        *storage.ImageDTO `json:"image,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func ToTipResponse(t *Tip) TipResponse {
	steps := make([]StepResponse, 0, len(t.Steps))
	for _, s := range t.Steps {
		steps = append(steps, StepResponse{
			StepNumber:  s.Number,
			Description: s.Description,
		})
	}

	tags := []string(t.Tags)
	if tags == nil {
		tags = []string{}
	}

	var videoURL string
	if t.VideoURL != nil {
		videoURL = *t.VideoURL
	}

	return TipResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Steps:        steps,
		CategoryID:   t.CategoryID,
		CategoryName: t.CategoryName,
		Tags:         tags,
		VideoURL:     videoURL,
		Image:        storage.ToDTO(t.Image),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func ToTipResponseList(tips []Tip) []TipResponse {
	responses := make([]TipResponse, 0, len(tips))
	for i := range tips {
		responses = append(responses, ToTipResponse(&tips[i]))
	}
	return responses
}

const (
	SortByCreatedAt = "CreatedAt"
	SortByUpdatedAt = "UpdatedAt"
	SortByTitle     = "Title"

	SortAscending  = "Ascending"
	SortDescending = "Descending"

	maxQueryLength = 200
)

type SearchParams struct {
	Query         string
	CategoryID    string
	Tags          []string
	SortBy        string
	SortDirection string
	Page          core.PageRequest
}

// ParseSearchParams reads the tip search query string. Unknown sort
// fields and directions are validation errors.
func ParseSearchParams(q url.Values) (SearchParams, error) {
	fields := core.FieldErrors{}

	page, err := core.ParsePageRequest(q)
	var appErr *core.AppError
	if errors.As(err, &appErr) {
		fields.Merge(appErr.Fields)
	}

	params := SearchParams{
		Query:         strings.TrimSpace(q.Get("q")),
		CategoryID:    strings.TrimSpace(q.Get("categoryId")),
		Tags:          parseTags(q["tags"]),
		SortBy:        SortByCreatedAt,
		SortDirection: SortDescending,
		Page:          page,
	}

	if len(params.Query) > maxQueryLength {
		fields.Add("q", "must be at most 200 characters")
	}

	if params.CategoryID != "" {
		if id, ok := core.ParseID(params.CategoryID); ok {
			params.CategoryID = id
		} else {
			fields.Add("categoryId", "must be a valid UUID")
		}
	}

	if raw := strings.TrimSpace(q.Get("sortBy")); raw != "" {
		switch {
		case strings.EqualFold(raw, SortByCreatedAt):
			params.SortBy = SortByCreatedAt
		case strings.EqualFold(raw, SortByUpdatedAt):
			params.SortBy = SortByUpdatedAt
		case strings.EqualFold(raw, SortByTitle):
			params.SortBy = SortByTitle
		default:
			fields.Add("sortBy", "must be one of: CreatedAt, UpdatedAt, Title")
		}
	}

	if raw := strings.TrimSpace(q.Get("sortDirection")); raw != "" {
		switch {
		case strings.EqualFold(raw, SortAscending):
			params.SortDirection = SortAscending
		case strings.EqualFold(raw, SortDescending):
			params.SortDirection = SortDescending
		default:
			fields.Add("sortDirection", "must be one of: Ascending, Descending")
		}
	}

	if len(params.Tags) > MaxTags {
		fields.Add("tags", "must contain at most 10 item(s)")
	}

	return params, fields.Err()
}

// parseTags accepts repeated and comma separated values and lowercases
// them for case-insensitive matching.
func parseTags(values []string) []string {
	seen := map[string]struct{}{}
	var tags []string

	for _, value := range values {
		for _, tag := range strings.Split(value, ",") {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	return tags
}
