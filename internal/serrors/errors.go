// Package serrors provides the typed errors used across skycast.
// Every error carries a stable code so callers (the HTTP server, the TUI)
// can decide how to surface it without matching on message text.
package serrors

import (
	"errors"
	"fmt"
)

// SkycastError is the base interface for all skycast errors
type SkycastError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all skycast errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// APIError is returned when the weather API answers with a non-2xx status
type APIError struct {
	baseError
	Endpoint string
	Status   int
}

// NewAPIError creates a new upstream API error
func NewAPIError(endpoint string, status int, message string) *APIError {
	return &APIError{
		baseError: baseError{
			code:    "API_ERROR",
			message: fmt.Sprintf("%s returned %d: %s", endpoint, status, message),
		},
		Endpoint: endpoint,
		Status:   status,
	}
}

// Retryable reports whether the status is worth another attempt
func (e *APIError) Retryable() bool {
	return e.Status >= 500 || e.Status == 429
}

// DecodeError is returned when a response body cannot be mapped
type DecodeError struct {
	baseError
	Endpoint string
}

// NewDecodeError creates a new decode error
func NewDecodeError(endpoint string, message string, cause error) *DecodeError {
	return &DecodeError{
		baseError: baseError{
			code:    "DECODE_ERROR",
			message: message,
			cause:   cause,
		},
		Endpoint: endpoint,
	}
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// CacheError represents errors in cache operations
type CacheError struct {
	baseError
	Path string
}

// NewCacheError creates a new cache error
func NewCacheError(path string, message string, cause error) *CacheError {
	return &CacheError{
		baseError: baseError{
			code:    "CACHE_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ValidationError represents invalid user input
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: message,
		},
		Resource: resource,
	}
}

// CodeOf returns the code of the first SkycastError in err's chain,
// or "INTERNAL" when there is none.
func CodeOf(err error) string {
	var se SkycastError
	if errors.As(err, &se) {
		return se.Code()
	}
	return "INTERNAL"
}
