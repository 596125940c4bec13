package publishing

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rotisserie/eris"

	"smoweb/app/internal/domain/slug"
)

var (
	// ErrNotFound indicates the requested item does not exist.
	ErrNotFound = eris.New("item not found")
	// ErrSlugConflict indicates the slug is already taken within the item type.
	ErrSlugConflict = slug.ErrConflict
)

// ValidationError carries per-field messages for rejected input.
type ValidationError struct {
	Fields validation.Errors
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: validation.Errors{field: errors.New(message)}}
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}

	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key].Error())
	}
	return strings.Join(parts, "; ")
}

// Messages flattens the field errors into plain strings.
func (e *ValidationError) Messages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for key, err := range e.Fields {
		out[key] = err.Error()
	}
	return out
}

// Validated converts the result of an ozzo validation call into a ValidationError.
// Internal rule errors are returned unchanged.
func Validated(err error) error {
	if err == nil {
		return nil
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		if filtered := fields.Filter(); filtered == nil {
			return nil
		}
		return &ValidationError{Fields: fields}
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return eris.Wrap(internal.InternalError(), "running validation rules")
	}

	return &ValidationError{Fields: validation.Errors{"input": err}}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return eris.Is(err, ErrNotFound)
}

// IsSlugConflict reports whether err wraps ErrSlugConflict.
func IsSlugConflict(err error) bool {
	return eris.Is(err, ErrSlugConflict)
}
