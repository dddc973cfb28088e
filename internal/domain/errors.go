package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by the store and its adapters.
var (
	// ErrNotFound is returned when an id does not resolve. The store leaves its
	// state and observers untouched in that case, so callers may ignore it.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput matches every *ValidationError via errors.Is.
	ErrInvalidInput = errors.New("invalid input")
	// ErrReferenced matches every *IntegrityError via errors.Is.
	ErrReferenced = errors.New("referenced by events")
	// ErrAlreadyLoaded is returned by a second snapshot load.
	ErrAlreadyLoaded = errors.New("snapshot already loaded")
)

// FieldError represents a single field's validation error.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"message"`
}

func (e FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Msg) }

// ValidationError is returned synchronously by create and update calls so the
// caller can keep its form open.
type ValidationError struct {
	Kind   EntityKind
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(msgs, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError returns nil when fields is empty.
func NewValidationError(kind EntityKind, fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Kind: kind, Fields: fields}
}

// IntegrityError reports a delete blocked by events still referencing the record.
type IntegrityError struct {
	Kind EntityKind
	ID   string
	// Name is the tag title or participant name, used in the message.
	Name         string
	ReferencedBy []string
}

func (e *IntegrityError) Error() string {
	label := e.ID
	if e.Name != "" {
		label = fmt.Sprintf("%q", e.Name)
	}
	return fmt.Sprintf("%s %s cannot be deleted: it is used by %d event(s)", e.Kind, label, len(e.ReferencedBy))
}

func (e *IntegrityError) Is(target error) bool { return target == ErrReferenced }
