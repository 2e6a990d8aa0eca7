package domain

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the failure class surfaced to the caller.
type ErrorKind string

const (
	ErrKindGateway            ErrorKind = "gateway"
	ErrKindAllGatewaysFailed  ErrorKind = "all_gateways_failed"
	ErrKindRateLimitExceeded  ErrorKind = "rate_limit_exceeded"
	ErrKindAPITimeout         ErrorKind = "api_timeout"
	ErrKindInvalidAPIResponse ErrorKind = "invalid_api_response"
)

// Severity tells the logging layer how loud a failure should be.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// CategoryNetwork tags every error this client produces.
const CategoryNetwork = "network"

// APIError is the serializable error crossing the UI boundary. Message is the
// technical detail for logs; UserMessage is the short string shown in the UI.
type APIError struct {
	Kind        ErrorKind `json:"kind"`
	Category    string    `json:"category"`
	Message     string    `json:"message"`
	UserMessage string    `json:"user_message"`
	Recoverable bool      `json:"recoverable"`
	Severity    Severity  `json:"severity"`

	// Kind-specific context.
	Attempts          int `json:"attempts,omitempty"`
	RetryAfterSeconds int `json:"retry_after_seconds,omitempty"`
	TimeoutSeconds    int `json:"timeout_seconds,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewGatewayError reports a failure of a single gateway attempt.
func NewGatewayError(message string) *APIError {
	return &APIError{
		Kind:        ErrKindGateway,
		Category:    CategoryNetwork,
		Message:     message,
		UserMessage: "A gateway request failed. Retrying automatically.",
		Recoverable: true,
		Severity:    SeverityWarning,
	}
}

// NewAllGatewaysFailed reports total exhaustion of the gateway list.
// attempts is the exact number of HTTP calls made during the logical call.
func NewAllGatewaysFailed(attempts int, lastError string) *APIError {
	msg := fmt.Sprintf("all gateways failed after %d attempts", attempts)
	if lastError != "" {
		msg = fmt.Sprintf("%s, last error: %s", msg, lastError)
	}
	return &APIError{
		Kind:        ErrKindAllGatewaysFailed,
		Category:    CategoryNetwork,
		Message:     msg,
		UserMessage: "Could not reach any gateway. Check your connection and try again.",
		Recoverable: true,
		Severity:    SeverityError,
		Attempts:    attempts,
	}
}

// NewRateLimitExceeded reports a 429 from a gateway, preserving the
// server-provided retry hint for caller messaging.
func NewRateLimitExceeded(retryAfterSeconds int) *APIError {
	return &APIError{
		Kind:              ErrKindRateLimitExceeded,
		Category:          CategoryNetwork,
		Message:           fmt.Sprintf("rate limited, retry after %ds", retryAfterSeconds),
		UserMessage:       fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfterSeconds),
		Recoverable:       true,
		Severity:          SeverityWarning,
		RetryAfterSeconds: retryAfterSeconds,
	}
}

// NewAPITimeout reports a request that exceeded the per-attempt time budget.
func NewAPITimeout(timeoutSeconds int) *APIError {
	return &APIError{
		Kind:           ErrKindAPITimeout,
		Category:       CategoryNetwork,
		Message:        fmt.Sprintf("request timed out after %ds", timeoutSeconds),
		UserMessage:    "The gateway took too long to respond.",
		Recoverable:    true,
		Severity:       SeverityWarning,
		TimeoutSeconds: timeoutSeconds,
	}
}

// NewInvalidAPIResponse reports a payload that could not be interpreted.
func NewInvalidAPIResponse(message string) *APIError {
	return &APIError{
		Kind:        ErrKindInvalidAPIResponse,
		Category:    CategoryNetwork,
		Message:     message,
		UserMessage: "The gateway returned an unexpected response.",
		Recoverable: false,
		Severity:    SeverityError,
	}
}

// AsAPIError unwraps err into an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
