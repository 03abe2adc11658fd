package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidFormat = errors.New("invalid format")
)

// FormatError reports an archive name or rating payload that cannot be parsed
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed %q: %s", e.Input, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// NotFoundError carries the literal path that failed to resolve
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("path not found: %q", e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
