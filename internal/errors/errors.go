// Package errors provides error types and handling for the indexer.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorType categorizes errors for handling decisions.
type ErrorType int

const (
	// Unknown is an uncategorized error.
	Unknown ErrorType = iota
	// NotFound represents a missing input or index file.
	NotFound
	// IO represents read/write failures (permissions, disk).
	IO
	// Parse represents invalid JSON in the discovery document.
	Parse
	// Validation represents invalid configuration.
	Validation
	// Stale represents a committed index that no longer matches the
	// discovery document.
	Stale
)

// String returns the string representation of ErrorType.
func (t ErrorType) String() string {
	switch t {
	case NotFound:
		return "not_found"
	case IO:
		return "io"
	case Parse:
		return "parse"
	case Validation:
		return "validation"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}

// IndexError represents a categorized indexing error.
type IndexError struct {
	Type      ErrorType
	Path      string
	Operation string
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error during %s on %s: %s (caused by: %v)",
			e.Type.String(), e.Operation, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error during %s on %s: %s",
		e.Type.String(), e.Operation, e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *IndexError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a target.
func (e *IndexError) Is(target error) bool {
	t, ok := target.(*IndexError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewIndexError creates a new IndexError.
func NewIndexError(errType ErrorType, path, operation, message string, cause error) *IndexError {
	return &IndexError{
		Type:      errType,
		Path:      path,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// NewNotFoundError creates a missing-file error.
func NewNotFoundError(path string, cause error) *IndexError {
	return NewIndexError(NotFound, path, "read", "file not found", cause)
}

// NewIOError creates a read/write error.
func NewIOError(path, operation string, cause error) *IndexError {
	return NewIndexError(IO, path, operation, "file operation failed", cause)
}

// NewParseError creates an invalid-document error.
func NewParseError(path string, cause error) *IndexError {
	return NewIndexError(Parse, path, "parse", "invalid discovery document", cause)
}

// NewValidationError creates a configuration error.
func NewValidationError(message string) *IndexError {
	return NewIndexError(Validation, "", "validate", message, nil)
}

// NewStaleError creates an index-drift error.
func NewStaleError(path, message string) *IndexError {
	return NewIndexError(Stale, path, "check", message, nil)
}

// Categorize determines the error type from a generic error.
func Categorize(err error, path string) *IndexError {
	if err == nil {
		return nil
	}

	var idxErr *IndexError
	if errors.As(err, &idxErr) {
		return idxErr
	}

	if errors.Is(err, fs.ErrNotExist) {
		return NewNotFoundError(path, err)
	}
	if errors.Is(err, fs.ErrPermission) {
		return NewIOError(path, "access", err)
	}

	return NewIndexError(Unknown, path, "index", err.Error(), err)
}

// GetErrorType extracts the error type from an error.
func GetErrorType(err error) ErrorType {
	var idxErr *IndexError
	if errors.As(err, &idxErr) {
		return idxErr.Type
	}
	return Unknown
}

// IsNotFound checks if an error is a missing-file error.
func IsNotFound(err error) bool {
	return GetErrorType(err) == NotFound
}

// IsStale checks if an error reports index drift.
func IsStale(err error) bool {
	return GetErrorType(err) == Stale
}
