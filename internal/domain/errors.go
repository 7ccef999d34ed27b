package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors mapped to HTTP status codes at the route boundary.
var (
	// ErrNotFound means the requested resource does not exist (404).
	ErrNotFound = errors.New("not found")

	// ErrConflict means a unique constraint was violated, e.g. a duplicate
	// service name (409).
	ErrConflict = errors.New("already exists")

	// ErrStorageUnavailable means the durable store could not be reached.
	// Read paths degrade to in-memory fallbacks; registry mutations fail.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError reports every invalid field of a request, not just the
// first one encountered.
type ValidationError struct {
	Fields map[string]string // field name -> reason
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a failed field. Returns the error for chaining.
func (e *ValidationError) Add(field, reason string) *ValidationError {
	e.Fields[field] = reason
	return e
}

// Empty reports whether any field failed validation.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation error: %s", strings.Join(names, ", "))
}

// Details returns one human-readable line per invalid field, sorted by
// field name for stable output.
func (e *ValidationError) Details() []string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	details := make([]string, 0, len(names))
	for _, f := range names {
		details = append(details, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return details
}
