// AngelaMos | 2026
// validator_test.go

package validation

import (
	"errors"
	"testing"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

func TestIsAllowedVideoURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: true},
		{url: "https://youtube.com/watch?v=dQw4w9WgXcQ&t=42", want: true},
		{url: "https://m.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", want: true},
		{url: "https://www.youtube.com/shorts/abcdefghijk", want: true},
		{url: "https://www.instagram.com/reel/C1a2B3c4D5e/", want: true},
		{url: "https://instagram.com/p/C1a2B3c4D5e", want: true},
		{url: "https://www.youtube.com/watch?v=short", want: false},
		{url: "https://vimeo.com/123456", want: false},
		{url: "https://evil.example.com/?u=https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: false},
		{url: "javascript:alert(1)", want: false},
		{url: "", want: false},
	}

	for _, tt := range tests {
		if got := IsAllowedVideoURL(tt.url); got != tt.want {
			t.Errorf("IsAllowedVideoURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

type stepInput struct {
	Description string `json:"description" validate:"required,min=10,max=500"`
}

type sampleRequest struct {
	Title    string      `json:"title"    validate:"required,min=5,max=200"`
	Steps    []stepInput `json:"steps"    validate:"required,min=1,dive"`
	Tags     []string    `json:"tags"     validate:"max=3,dive,min=1,max=50"`
	VideoURL string      `json:"videoUrl" validate:"omitempty,video_url"`
}

func TestStruct_FieldPaths(t *testing.T) {
	req := sampleRequest{
		Title:    "abc",
		Steps:    []stepInput{{Description: "long enough step"}, {Description: "short"}},
		Tags:     []string{"ok", ""},
		VideoURL: "https://vimeo.com/1",
	}

	err := Struct(req)

	var appErr *core.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *core.AppError, got %v", err)
	}
	if !errors.Is(err, core.ErrValidation) {
		t.Error("expected error to wrap core.ErrValidation")
	}

	for _, field := range []string{"title", "steps[1].description", "tags[1]", "videoUrl"} {
		if _, ok := appErr.Fields[field]; !ok {
			t.Errorf("missing error for %q in %v", field, appErr.Fields)
		}
	}
	if _, ok := appErr.Fields["steps[0].description"]; ok {
		t.Error("valid step should not be reported")
	}
}

func TestStruct_EmptyStepsAndValid(t *testing.T) {
	err := Struct(sampleRequest{Title: "Valid title", Steps: []stepInput{}})

	var appErr *core.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := appErr.Fields["steps"]; len(got) != 1 || got[0] != "must contain at least 1 item(s)" {
		t.Errorf("steps error = %v", got)
	}

	valid := sampleRequest{
		Title:    "Valid title",
		Steps:    []stepInput{{Description: "Boil the kettle first"}},
		VideoURL: "https://www.youtube.com/shorts/abcdefghijk",
	}
	if err := Struct(valid); err != nil {
		t.Errorf("Struct(valid) = %v", err)
	}
}

func TestGet_Singleton(t *testing.T) {
	if Get() != Get() {
		t.Error("Get() should return the same instance")
	}
}
