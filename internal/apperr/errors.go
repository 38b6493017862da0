package apperr

import (
	"errors"
	"fmt"
)

// Sentinels for the failure classes every layer reports. Use errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrIntegrity        = errors.New("integrity violation")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports malformed or missing input. Nothing was written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError reports an identifier that does not resolve.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d %s", e.Resource, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Validation builds a ValidationError.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFound builds a NotFoundError.
func NotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// InvalidData wraps a value the store could not hold, such as an out of
// range number. It reads as a validation failure.
func InvalidData(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrValidation, cause)
}

// Integrity wraps a store constraint rejection.
func Integrity(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrIntegrity, cause)
}

// Unavailable wraps a failure to reach the store.
func Unavailable(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, cause)
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsIntegrity(err error) bool { return errors.Is(err, ErrIntegrity) }

func IsUnavailable(err error) bool { return errors.Is(err, ErrStoreUnavailable) }
