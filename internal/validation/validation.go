// Package validation checks request payloads before any state is touched.
//
// Failures are reported as *Error, a field -> message map. Error unwraps to the
// most specific apperrors sentinel that applies, so callers can match either
// that sentinel or apperrors.ErrInvalidInput with errors.Is.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niveshai/niveshai-backend/internal/apperrors"
)

// Error reports one message per offending field.
type Error struct {
	Fields map[string]string
	// Kind is the sentinel of the first failure recorded.
	Kind error
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, field := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}

// Unwrap returns Kind, or apperrors.ErrInvalidInput when no kind was recorded.
func (e *Error) Unwrap() error {
	if e.Kind != nil {
		return e.Kind
	}
	return apperrors.ErrInvalidInput
}

func newError() *Error {
	return &Error{Fields: make(map[string]string)}
}

// add records a failure. The first field for a name wins.
func (e *Error) add(field, msg string, kind error) {
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = msg
	if e.Kind == nil {
		e.Kind = kind
	}
}

// orNil returns e when it holds any failure.
func (e *Error) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD or RFC3339 date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}
