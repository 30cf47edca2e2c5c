package common

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeConfiguration for invalid settings detected at startup
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeInvalidArgument for caller input rejected before any request
	ErrorTypeInvalidArgument ErrorType = "invalid_argument"
	// ErrorTypeAuthentication for HTTP 401 responses
	ErrorTypeAuthentication ErrorType = "authentication"
	// ErrorTypeClientRequest for HTTP 4xx responses other than 401
	ErrorTypeClientRequest ErrorType = "client_request"
	// ErrorTypeServer for HTTP 5xx responses
	ErrorTypeServer ErrorType = "server"
	// ErrorTypeNetwork for connection, timeout and transport failures
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeResponse for success responses whose payload cannot be used
	ErrorTypeResponse ErrorType = "response"
)

// JiraError represents a structured error with context
type JiraError struct {
	Type       ErrorType              `json:"type"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	StatusCode int                    `json:"status_code,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	Context    map[string]interface{} `json:"context,omitempty"`
	Cause      error                  `json:"-"`
}

// Error implements the error interface
func (e *JiraError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s:%s] %s: %s", e.Type, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *JiraError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether another attempt could plausibly succeed.
// Only server-side and transport failures qualify.
func (e *JiraError) Retryable() bool {
	return e.Type == ErrorTypeServer || e.Type == ErrorTypeNetwork
}

// WithContext adds context to the error
func (e *JiraError) WithContext(key string, value interface{}) *JiraError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithCause sets the underlying cause
func (e *JiraError) WithCause(cause error) *JiraError {
	e.Cause = cause
	return e
}

// NewError creates a new JiraError
func NewError(errorType ErrorType, code, message string) *JiraError {
	return &JiraError{
		Type:      errorType,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(code, message string) *JiraError {
	return NewError(ErrorTypeConfiguration, code, message)
}

// NewInvalidArgumentError creates an invalid argument error
func NewInvalidArgumentError(code, message string) *JiraError {
	return NewError(ErrorTypeInvalidArgument, code, message)
}

// NewAuthenticationError creates the error returned for a 401. The identity and
// raw body are kept in the message to make credential problems obvious.
func NewAuthenticationError(identity, body string) *JiraError {
	e := NewError(ErrorTypeAuthentication, "unauthorized", fmt.Sprintf(
		"Jira API authentication failed (401 Unauthorized). Please verify your email (%s) and API token are correct. Response: %s",
		identity, body))
	e.StatusCode = 401
	return e
}

// NewClientRequestError creates an error for a non-401 4xx response
func NewClientRequestError(statusCode int, body string) *JiraError {
	e := NewError(ErrorTypeClientRequest, fmt.Sprintf("http_%d", statusCode),
		fmt.Sprintf("Jira API request failed with status %d: %s", statusCode, body))
	e.StatusCode = statusCode
	return e
}

// NewServerError creates an error for a 5xx response
func NewServerError(statusCode int, body string) *JiraError {
	e := NewError(ErrorTypeServer, fmt.Sprintf("http_%d", statusCode),
		fmt.Sprintf("Jira API server error with status %d: %s", statusCode, body))
	e.StatusCode = statusCode
	return e
}

// NewNetworkError creates a transport-level error wrapping cause
func NewNetworkError(code string, cause error) *JiraError {
	msg := "Jira API request failed"
	if cause != nil {
		msg = fmt.Sprintf("Jira API request failed: %v", cause)
	}
	return NewError(ErrorTypeNetwork, code, msg).WithCause(cause)
}

// NewResponseError creates an error for an unusable success payload
func NewResponseError(code, message string) *JiraError {
	return NewError(ErrorTypeResponse, code, message)
}

// WrapError wraps an existing error with JiraError context
func WrapError(err error, errorType ErrorType, code, message string) *JiraError {
	return &JiraError{
		Type:      errorType,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Cause:     err,
	}
}

// IsErrorType reports whether err, or anything it wraps, is a JiraError of type t
func IsErrorType(err error, t ErrorType) bool {
	var je *JiraError
	return errors.As(err, &je) && je.Type == t
}

// ErrorTypeOf returns the type of the first JiraError in err's chain, or "" if there is none
func ErrorTypeOf(err error) ErrorType {
	var je *JiraError
	if errors.As(err, &je) {
		return je.Type
	}
	return ""
}

// IsRetryable is the default retry predicate used by the API client
func IsRetryable(err error) bool {
	var je *JiraError
	return errors.As(err, &je) && je.Retryable()
}
