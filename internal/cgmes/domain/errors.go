package cgmes

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a record lacks a required property.
	ErrMissingField = errors.New("cgmes: missing field")
	// ErrInvalidField is returned when a property value cannot be parsed.
	ErrInvalidField = errors.New("cgmes: invalid field")
	// ErrUnknownKind is returned when no query exists for an entity kind.
	ErrUnknownKind = errors.New("cgmes: unknown entity kind")
)

// MissingFieldError reports the entity kind and property that was absent.
type MissingFieldError struct {
	Kind     Kind
	Property string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("cgmes: %s record missing field %q", e.Kind, e.Property)
}

// Is matches ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// InvalidFieldError reports a property whose value failed to parse.
type InvalidFieldError struct {
	Kind     Kind
	Property string
	Value    string
	Err      error
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("cgmes: %s record field %q has invalid value %q: %v", e.Kind, e.Property, e.Value, e.Err)
}

// Is matches ErrInvalidField.
func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}

func (e *InvalidFieldError) Unwrap() error {
	return e.Err
}
