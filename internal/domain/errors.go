package domain

import (
	"errors"
	"fmt"
)

// Error types shared by the API client and the page controllers.
// Every API failure is one of two kinds, ErrNetwork or ErrServerRejected,
// wrapped in ErrExternalService with the operation that failed.

// ErrNetwork indicates the request never produced a usable response:
// transport failure, open circuit breaker, or a body that is not valid JSON.
type ErrNetwork struct {
	Err error
}

func (e *ErrNetwork) Error() string {
	return fmt.Sprintf("network or parse error: %v", e.Err)
}

func (e *ErrNetwork) Unwrap() error {
	return e.Err
}

// ErrServerRejected indicates a non-2xx response. The body is not inspected.
type ErrServerRejected struct {
	StatusCode int
}

func (e *ErrServerRejected) Error() string {
	return fmt.Sprintf("server rejected request with status %d", e.StatusCode)
}

// ErrExternalService indicates a failure in a call to the receivables API.
type ErrExternalService struct {
	Operation string
	Err       error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("receivables api error [%s]: %v", e.Operation, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrValidation indicates a form value a native control would have refused.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrorKind names the kind of an API error for logs and metrics.
func ErrorKind(err error) string {
	var network *ErrNetwork
	var rejected *ErrServerRejected
	var validation *ErrValidation

	switch {
	case errors.As(err, &rejected):
		return "server_rejected"
	case errors.As(err, &network):
		return "network"
	case errors.As(err, &validation):
		return "validation"
	default:
		return "unknown"
	}
}
