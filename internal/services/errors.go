package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalService   = errors.New("external service error")
	ErrValidation        = errors.New("validation error")
	ErrConfiguration     = errors.New("configuration error")
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNoMatch           = errors.New("no match")
	ErrTransient         = errors.New("transient failure")
)

// Wrap tags err with marker for later classification and prefixes the message
// with component and operation context. A nil marker falls back to
// ErrTransient; a nil err produces an error carrying only the detail.
func Wrap(marker error, component, operation, message string, err error) error {
	if marker == nil {
		marker = ErrTransient
	}
	detail := buildDetail(component, operation, message)
	if err == nil {
		return fmt.Errorf("%w: %s", marker, detail)
	}
	return fmt.Errorf("%w: %s: %w", marker, detail, err)
}

// IsSkip reports whether a per-file error should be recorded as a skip rather
// than a failure. Skips cover files the run was never expected to handle:
// extensions outside the supported set and names the pattern cannot parse.
func IsSkip(err error) bool {
	switch {
	case errors.Is(err, ErrUnsupportedFormat), errors.Is(err, ErrNoMatch):
		return true
	default:
		return false
	}
}

func buildDetail(component, operation, message string) string {
	var parts []string
	for _, part := range []string{component, operation, message} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
