package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies gateway failures so callers can decide how to
// degrade without inspecting provider-specific error types.
type ErrorKind int

const (
	// UnknownError covers failures with no more specific classification.
	UnknownError ErrorKind = iota

	// TimeoutError means the provider did not answer within the deadline.
	TimeoutError

	// AuthFailureError means the provider rejected our credentials.
	AuthFailureError

	// RateLimitedError means the provider throttled the request.
	RateLimitedError

	// MalformedResponseError means the provider answered with a payload
	// we could not interpret.
	MalformedResponseError
)

// String returns a stable label for the error kind, used in logs.
func (k ErrorKind) String() string {
	switch k {
	case TimeoutError:
		return "timeout"
	case AuthFailureError:
		return "auth_failure"
	case RateLimitedError:
		return "rate_limited"
	case MalformedResponseError:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// GatewayError is returned by Gateway implementations for provider
// failures. It wraps the underlying provider error.
type GatewayError struct {
	Kind     ErrorKind
	Provider string
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s): %v", e.Provider, e.Message, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Provider, e.Message, e.Kind)
}

// Unwrap returns the wrapped provider error.
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewGatewayError creates a GatewayError with the given classification.
func NewGatewayError(kind ErrorKind, provider, message string, err error) *GatewayError {
	return &GatewayError{
		Kind:     kind,
		Provider: provider,
		Message:  message,
		Err:      err,
	}
}

// ErrorKindOf extracts the classification from an error chain.
// Returns UnknownError when no GatewayError is present.
func ErrorKindOf(err error) ErrorKind {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return UnknownError
}
