package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Document errors
	ErrCodeDocumentNotFound ErrorCode = "DOCUMENT_NOT_FOUND"
	ErrCodeDocumentInvalid  ErrorCode = "DOCUMENT_INVALID"
	ErrCodeNoCurrent        ErrorCode = "NO_CURRENT_DOCUMENT"

	// Content errors
	ErrCodeInvalidJSON    ErrorCode = "INVALID_JSON"
	ErrCodeInvalidContent ErrorCode = "INVALID_CONTENT"
	ErrCodeUnknownFormat  ErrorCode = "UNKNOWN_FORMAT"

	// Persistence errors
	ErrCodeSnapshotRead  ErrorCode = "SNAPSHOT_READ"
	ErrCodeSnapshotWrite ErrorCode = "SNAPSHOT_WRITE"

	// Query errors
	ErrCodeQueryFailed ErrorCode = "QUERY_FAILED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// PromptsError represents a structured error with context
type PromptsError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *PromptsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PromptsError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *PromptsError) WithDetail(key string, value interface{}) *PromptsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *PromptsError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new PromptsError
func New(code ErrorCode, message string) *PromptsError {
	return &PromptsError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PromptsError
func Wrap(err error, code ErrorCode, message string) *PromptsError {
	return &PromptsError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific PromptsError code
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, searching the whole
// unwrap chain.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	if pe, ok := err.(*PromptsError); ok {
		return pe.Code
	}

	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		return GetCode(unwrapper.Unwrap())
	}
	return ""
}
