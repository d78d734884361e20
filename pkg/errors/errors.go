package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrIO           ErrorCode = "IO"

	// Hashing errors
	ErrUnsupportedEntryType ErrorCode = "UNSUPPORTED_ENTRY_TYPE"

	// Store errors
	ErrConflict          ErrorCode = "CONFLICT"
	ErrCopyFailed        ErrorCode = "COPY_FAILED"
	ErrHashingFailed     ErrorCode = "HASHING_FAILED"
	ErrInvalidSourceName ErrorCode = "INVALID_SOURCE_NAME"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Realise errors
	ErrTargetExists  ErrorCode = "TARGET_EXISTS"
	ErrLinkCreate    ErrorCode = "LINK_CREATE"
	ErrRealiseFailed ErrorCode = "REALISE_FAILED"
)

// CardinalError represents a structured error with code and details
type CardinalError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CardinalError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CardinalError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CardinalError) Is(target error) bool {
	var targetErr *CardinalError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CardinalError with the given code and message
func New(code ErrorCode, message string) *CardinalError {
	return &CardinalError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CardinalError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CardinalError {
	return &CardinalError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CardinalError.
// A nil err yields a nil *CardinalError; callers returning a plain error
// must check err first.
func Wrap(err error, code ErrorCode, message string) *CardinalError {
	if err == nil {
		return nil
	}
	return &CardinalError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CardinalError {
	if err == nil {
		return nil
	}
	return &CardinalError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CardinalError) WithDetail(key string, value interface{}) *CardinalError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *CardinalError) WithDetails(details map[string]interface{}) *CardinalError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code.
// Only the outermost CardinalError in the chain is consulted.
func IsErrorCode(err error, code ErrorCode) bool {
	var cardinalErr *CardinalError
	if errors.As(err, &cardinalErr) {
		return cardinalErr.Code == code
	}
	return false
}

// HasErrorCode reports whether any CardinalError in the chain carries code.
func HasErrorCode(err error, code ErrorCode) bool {
	return errors.Is(err, &CardinalError{Code: code})
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CardinalError
func GetErrorCode(err error) ErrorCode {
	var cardinalErr *CardinalError
	if errors.As(err, &cardinalErr) {
		return cardinalErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a CardinalError
func GetErrorDetails(err error) map[string]interface{} {
	var cardinalErr *CardinalError
	if errors.As(err, &cardinalErr) {
		return cardinalErr.Details
	}
	return nil
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
