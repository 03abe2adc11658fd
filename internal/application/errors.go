package application

import (
	"errors"
	"fmt"

	"linkshelf/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = domain.ErrNotFound
	ErrInvalidFormat    = domain.ErrInvalidFormat
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNotPersisted     = errors.New("change not persisted")
)

// Re-export domain error types so adapters depend on one package
type (
	FormatError   = domain.FormatError
	NotFoundError = domain.NotFoundError
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// PersistError reports that an in-memory change succeeded but the archive
// document could not be written
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s applied but not saved: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

func (e *PersistError) Is(target error) bool {
	return target == ErrNotPersisted
}
