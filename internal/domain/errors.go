package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrNoRepositories indicates the catalog came back empty, either because
	// the token is invalid or because the service hosts no repositories
	ErrNoRepositories = errors.New("token is invalid or no repository")

	// ErrMissingField indicates a response is missing a field the remote
	// service contract requires
	ErrMissingField = errors.New("required response field missing")
)

// FetchError represents an error during fetching
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, statusCode int, err error) *FetchError {
	return &FetchError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ErrorType returns the name used for failure bookkeeping: the concrete type
// of the outermost wrapper when there is one, otherwise a generic marker.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	default:
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			return "FetchError"
		}
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return "ValidationError"
		}
		return fmt.Sprintf("%T", err)
	}
}
