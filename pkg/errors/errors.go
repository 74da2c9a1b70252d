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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Declaration document errors
	ErrIO    ErrorCode = "IO"
	ErrParse ErrorCode = "PARSE"
	ErrCycle ErrorCode = "CYCLE"

	// Editor errors
	ErrNoSuchCategory    ErrorCode = "NO_SUCH_CATEGORY"
	ErrAmbiguousCategory ErrorCode = "AMBIGUOUS_CATEGORY"

	// External process errors
	ErrCommand       ErrorCode = "COMMAND"
	ErrUserCancelled ErrorCode = "USER_CANCELLED"

	// Persistence errors
	ErrBackup    ErrorCode = "BACKUP"
	ErrFileWrite ErrorCode = "FILE_WRITE"
)

// PacdecError represents a structured error with code and details
type PacdecError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PacdecError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PacdecError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PacdecError) Is(target error) bool {
	var targetErr *PacdecError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PacdecError with the given code and message
func New(code ErrorCode, message string) *PacdecError {
	return &PacdecError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PacdecError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PacdecError {
	return &PacdecError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PacdecError
func Wrap(err error, code ErrorCode, message string) *PacdecError {
	if err == nil {
		return nil
	}
	return &PacdecError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PacdecError {
	if err == nil {
		return nil
	}
	return &PacdecError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PacdecError) WithDetail(key string, value interface{}) *PacdecError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code.
// The outermost PacdecError in the chain decides.
func IsErrorCode(err error, code ErrorCode) bool {
	var pErr *PacdecError
	if errors.As(err, &pErr) {
		return pErr.Code == code
	}
	return false
}

// HasErrorCode reports whether any PacdecError in the chain carries code.
func HasErrorCode(err error, code ErrorCode) bool {
	return errors.Is(err, New(code, ""))
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PacdecError
func GetErrorCode(err error) ErrorCode {
	var pErr *PacdecError
	if errors.As(err, &pErr) {
		return pErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PacdecError
func GetErrorDetails(err error) map[string]interface{} {
	var pErr *PacdecError
	if errors.As(err, &pErr) {
		return pErr.Details
	}
	return nil
}
