package github

import (
	"errors"
	"fmt"
)

// RemoteError is returned when the GitHub API is unreachable or answers with
// a non-2xx status for a request the pipeline cannot proceed without.
type RemoteError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("github API error (status %d): %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("github API error (status %d): %s", e.StatusCode, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NewRemoteError creates a new RemoteError with the given status code and message
func NewRemoteError(statusCode int, message string, err error) error {
	return &RemoteError{
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// IsRemoteUnavailable reports whether err is a RemoteError anywhere in its
// chain.
func IsRemoteUnavailable(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// ValidationError represents invalid input to client methods
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: invalid %s: %s", e.Field, e.Value)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, value string) error {
	return &ValidationError{
		Field: field,
		Value: value,
	}
}
