package backend

import (
	"errors"
	"fmt"
)

// Common backend errors
var (
	ErrMissingKey     = errors.New("api key is required")
	ErrUnreachable    = errors.New("backend unreachable")
	ErrBadCredentials = errors.New("credentials rejected")
	ErrUpstream       = errors.New("upstream returned an error status")
)

// ErrorCode classifies a failure so callers can react specifically:
// a credential error prompts for a new key, a connectivity error suggests
// checking the service, an upstream error carries the raw status for
// diagnosis.
type ErrorCode string

const (
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeConnectivity ErrorCode = "CONNECTIVITY"
	ErrCodeCredential   ErrorCode = "CREDENTIAL"
	ErrCodeUpstream     ErrorCode = "UPSTREAM"
)

// BackendError wraps a failure with its classification. It never crosses
// the adapter boundary: Scrape converts it to a Failure envelope via
// FailureFrom.
type BackendError struct {
	Code       ErrorCode
	Message    string
	Underlying error
}

func (e *BackendError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Underlying
}

func (e *BackendError) Is(target error) bool {
	if t, ok := target.(*BackendError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

// NewBackendError creates a classified backend error.
func NewBackendError(code ErrorCode, message string, err error) *BackendError {
	return &BackendError{Code: code, Message: message, Underlying: err}
}
