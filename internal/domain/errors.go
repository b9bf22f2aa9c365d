package domain

import (
	"errors"
	"fmt"

	m "depmap.dev/pkg/depmap/internal/model"
)

var (
	// ErrInvalidInput is matched by every InvalidInputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrFileAccess is matched by every FileAccessError.
	ErrFileAccess = errors.New("file access failed")
	// ErrUnresolved is returned in strict mode when references stay unresolved.
	ErrUnresolved = errors.New("unresolved dependency references")
)

// InvalidInputError reports a malformed or missing resolver input.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold.
func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// FileAccessError reports a filesystem failure other than "does not exist".
type FileAccessError struct {
	Path m.Path
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("access %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrFileAccess and the underlying cause.
func (e *FileAccessError) Unwrap() []error {
	return []error{ErrFileAccess, e.Err}
}
