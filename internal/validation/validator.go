// AngelaMos | 2026
// validator.go

// Package validation wraps a shared go-playground validator that reports
// failures as core.FieldErrors keyed by JSON field path.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var videoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(www\.|m\.)?youtube\.com/watch\?(.*&)?v=[A-Za-z0-9_-]{11}(&.*)?$`),
	regexp.MustCompile(`^https?://(www\.|m\.)?youtube\.com/shorts/[A-Za-z0-9_-]{11}/?(\?.*)?$`),
	regexp.MustCompile(`^https?://(www\.)?instagram\.com/(p|reel|reels)/[A-Za-z0-9_-]+/?(\?.*)?$`),
}

// IsAllowedVideoURL reports whether s points at a supported video platform.
func IsAllowedVideoURL(s string) bool {
	for _, pattern := range videoURLPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		//nolint:errcheck // tag name is static and valid
		_ = validate.RegisterValidation("video_url", func(fl validator.FieldLevel) bool {
			return IsAllowedVideoURL(fl.Field().String())
		})
	})

	return validate
}

// Struct validates s and returns a core validation error describing every
// failed field, or nil.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	return ToFieldErrors(validationErrs).Err()
}

func ToFieldErrors(errs validator.ValidationErrors) core.FieldErrors {
	fields := core.FieldErrors{}
	for _, fe := range errs {
		fields.Add(fieldPath(fe), message(fe))
	}
	return fields
}

// fieldPath drops the root struct name from the namespace, so
// "TipRequest.steps[0].description" becomes "steps[0].description".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	isCollection := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array

	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isCollection {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isCollection {
			return fmt.Sprintf("must contain at most %s item(s)", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "url", "http_url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "video_url":
		return "must be a YouTube (watch or shorts) or Instagram video URL"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return "is invalid"
	}
}
