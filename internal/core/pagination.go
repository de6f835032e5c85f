// AngelaMos | 2026
// pagination.go

package core

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100

	// MaxOffset bounds the number of rows a page request may skip.
	MaxOffset = math.MaxInt32
)

type PageRequest struct {
	PageNumber int
	PageSize   int
}

// ParsePageRequest reads pageNumber and pageSize from the query string.
// Missing values fall back to defaults; malformed or out-of-range values
// are validation errors rather than being clamped.
func ParsePageRequest(q url.Values) (PageRequest, error) {
	fields := FieldErrors{}
	page := PageRequest{
		PageNumber: DefaultPageNumber,
		PageSize:   DefaultPageSize,
	}

	if raw := strings.TrimSpace(q.Get("pageNumber")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields.Add("pageNumber", "must be an integer")
		} else {
			page.PageNumber = n
		}
	}

	if raw := strings.TrimSpace(q.Get("pageSize")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields.Add("pageSize", "must be an integer")
		} else {
			page.PageSize = n
		}
	}

	if err := fields.Err(); err != nil {
		return page, err
	}

	return page, page.Validate()
}

func (p PageRequest) Validate() error {
	fields := FieldErrors{}

	if p.PageNumber < 1 {
		fields.Add("pageNumber", "must be greater than or equal to 1")
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		fields.Add("pageSize", "must be between 1 and 100")
	} else if p.PageNumber-1 > MaxOffset/p.PageSize {
		fields.Add("pageNumber", "is beyond the last addressable page")
	}

	return fields.Err()
}

func (p PageRequest) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

type PageMetadata struct {
	TotalItems int `json:"totalItems"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

func NewPageMetadata(totalItems int, page PageRequest) PageMetadata {
	return PageMetadata{
		TotalItems: totalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		TotalPages: TotalPages(totalItems, page.PageSize),
	}
}

// TotalPages is ceil(totalItems / pageSize).
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 || totalItems <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

type PagedResponse[T any] struct {
	Items    []T          `json:"items"`
	Metadata PageMetadata `json:"metadata"`
}

func NewPagedResponse[T any](items []T, totalItems int, page PageRequest) PagedResponse[T] {
	if items == nil {
		items = []T{}
	}
	return PagedResponse[T]{
		Items:    items,
		Metadata: NewPageMetadata(totalItems, page),
	}
}
