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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Discovery errors
	ErrRootNotFound ErrorCode = "ROOT_NOT_FOUND"
	ErrRootNotDir   ErrorCode = "ROOT_NOT_DIR"

	// FileSystem errors
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrHashFailed   ErrorCode = "HASH_FAILED"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrMoveFailed   ErrorCode = "MOVE_FAILED"
	ErrRenameFailed ErrorCode = "RENAME_FAILED"
)

// UndupeError represents a structured error with code and details
type UndupeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *UndupeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *UndupeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *UndupeError) Is(target error) bool {
	var targetErr *UndupeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new UndupeError with the given code and message
func New(code ErrorCode, message string) *UndupeError {
	return &UndupeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new UndupeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *UndupeError {
	return &UndupeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an UndupeError
func Wrap(err error, code ErrorCode, message string) *UndupeError {
	if err == nil {
		return nil
	}
	return &UndupeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *UndupeError {
	if err == nil {
		return nil
	}
	return &UndupeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *UndupeError) WithDetail(key string, value interface{}) *UndupeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var undupeErr *UndupeError
	if errors.As(err, &undupeErr) {
		return undupeErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an UndupeError
func GetErrorCode(err error) ErrorCode {
	var undupeErr *UndupeError
	if errors.As(err, &undupeErr) {
		return undupeErr.Code
	}
	return ErrUnknown
}
