// AngelaMos | 2026
// pagination_test.go

package core

import (
	"errors"
	"net/url"
	"testing"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int
		pageSize int
		want     int
	}{
		{total: 0, pageSize: 10, want: 0},
		{total: 1, pageSize: 10, want: 1},
		{total: 10, pageSize: 10, want: 1},
		{total: 11, pageSize: 10, want: 2},
		{total: 99, pageSize: 100, want: 1},
		{total: 101, pageSize: 100, want: 2},
		{total: 7, pageSize: 1, want: 7},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.pageSize); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
		}
	}
}

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		want      PageRequest
		wantField string
	}{
		{name: "defaults", query: "", want: PageRequest{PageNumber: 1, PageSize: 10}},
		{name: "explicit", query: "pageNumber=3&pageSize=25", want: PageRequest{PageNumber: 3, PageSize: 25}},
		{name: "max page size", query: "pageSize=100", want: PageRequest{PageNumber: 1, PageSize: 100}},
		{name: "page size too large", query: "pageSize=101", wantField: "pageSize"},
		{name: "page size zero", query: "pageSize=0", wantField: "pageSize"},
		{name: "page number zero", query: "pageNumber=0", wantField: "pageNumber"},
		{name: "not a number", query: "pageNumber=abc", wantField: "pageNumber"},
		{name: "offset overflow", query: "pageNumber=9223372036854775807&pageSize=100", wantField: "pageNumber"},
		{name: "offset past bound", query: "pageNumber=21474838&pageSize=100", wantField: "pageNumber"},
		{name: "last addressable page", query: "pageNumber=21474837&pageSize=100", want: PageRequest{PageNumber: 21474837, PageSize: 100}},
		{name: "beyond int range", query: "pageNumber=99999999999999999999", wantField: "pageNumber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}

			got, err := ParsePageRequest(q)
			if tt.wantField != "" {
				var appErr *AppError
				if !errors.As(err, &appErr) {
					t.Fatalf("expected AppError, got %v", err)
				}
				if _, ok := appErr.Fields[tt.wantField]; !ok {
					t.Errorf("expected error on %q, got %v", tt.wantField, appErr.Fields)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewPagedResponse(t *testing.T) {
	page := PageRequest{PageNumber: 2, PageSize: 3}
	resp := NewPagedResponse([]string{"a", "b"}, 5, page)

	if resp.Metadata.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", resp.Metadata.TotalPages)
	}
	if resp.Metadata.TotalItems != 5 || resp.Metadata.PageNumber != 2 || resp.Metadata.PageSize != 3 {
		t.Errorf("unexpected metadata %+v", resp.Metadata)
	}
	if page.Offset() != 3 {
		t.Errorf("Offset() = %d, want 3", page.Offset())
	}

	empty := NewPagedResponse[string](nil, 0, page)
	if empty.Items == nil {
		t.Error("Items should be an empty slice, not nil")
	}
}
