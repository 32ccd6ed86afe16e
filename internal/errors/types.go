package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "VALIDATION_ERROR"
	ErrorTypeCredentialMissing ErrorType = "PROVIDER_CREDENTIAL_MISSING"
	ErrorTypeProviderRequest   ErrorType = "PROVIDER_REQUEST_FAILED"
	ErrorTypeProviderOutput    ErrorType = "PROVIDER_OUTPUT_MALFORMED"
	ErrorTypeStageNoResult     ErrorType = "STAGE_NO_RESULT"
	ErrorTypeNotFound          ErrorType = "NOT_FOUND_ERROR"
	ErrorTypePersistence       ErrorType = "PERSISTENCE_ERROR"
	ErrorTypeInternal          ErrorType = "INTERNAL_ERROR"
)

// AppError represents a structured error for the application
type AppError struct {
	Type          ErrorType `json:"type"`
	Message       string    `json:"message"`
	StatusCode    int       `json:"statusCode"`
	ErrorCode     string    `json:"errorCode"`
	IsOperational bool      `json:"isOperational"`
	Recovery      string    `json:"recoverySuggestion,omitempty"`
	Err           error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the application-specific error code
func (e *AppError) Code() string {
	return e.ErrorCode
}

// RecoverySuggestion returns the suggestion on how to recover from the error
func (e *AppError) RecoverySuggestion() string {
	return e.Recovery
}

// AsAppError unwraps err into an *AppError, or wraps it as an internal error
// so handlers always have a status code and error code to report.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Type:          ErrorTypeInternal,
		Message:       "internal error",
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     "INTERNAL_ERROR",
		IsOperational: false,
		Err:           err,
	}
}

// NewValidationError creates a new validation error (400)
func NewValidationError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeValidation,
		Message:       message,
		StatusCode:    http.StatusBadRequest,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewNotFoundError creates a new not found error (404)
func NewNotFoundError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeNotFound,
		Message:       message,
		StatusCode:    http.StatusNotFound,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewCredentialMissingError reports a required provider credential absent from
// the environment. Raised at provider construction, before any network call.
func NewCredentialMissingError(message string, errorCode string) *AppError {
	return &AppError{
		Type:          ErrorTypeCredentialMissing,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Set the provider credential in the process environment and retry.",
	}
}

// NewProviderRequestError reports a remote provider call that returned a
// non-success status. The vendor's status and body belong in the message.
func NewProviderRequestError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeProviderRequest,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Check the provider's status page or retry later.",
		Err:           err,
	}
}

// NewProviderOutputError reports a local model/engine producing output of an
// unexpected shape.
func NewProviderOutputError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeProviderOutput,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Verify the model binary and weights are installed correctly.",
		Err:           err,
	}
}

// NewStageNoResultError reports a pipeline stage whose isolated worker
// terminated without producing a result.
func NewStageNoResultError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeStageNoResult,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Try a different provider method or a shorter recording.",
		Err:           err,
	}
}

// NewPersistenceError reports a failed store operation (500)
func NewPersistenceError(message string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypePersistence,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     "PERSISTENCE_ERROR",
		IsOperational: true,
		Err:           err,
	}
}
