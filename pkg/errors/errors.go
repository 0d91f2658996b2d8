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

	// Environment errors
	ErrProgramNotFound ErrorCode = "PROGRAM_NOT_FOUND"
	ErrHomeAccess      ErrorCode = "HOME_ACCESS"
	ErrStorageAccess   ErrorCode = "STORAGE_ACCESS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Registry errors
	ErrRegistryLoad  ErrorCode = "REGISTRY_LOAD"
	ErrRegistryWrite ErrorCode = "REGISTRY_WRITE"
	ErrRegistryDrift ErrorCode = "REGISTRY_DRIFT"

	// Relocation errors
	ErrRestoreCollision ErrorCode = "RESTORE_COLLISION"
	ErrEvacuate         ErrorCode = "EVACUATE"

	// Locking errors
	ErrLockHeld ErrorCode = "LOCK_HELD"

	// Child process errors
	ErrChildStart ErrorCode = "CHILD_START"
)

// UndotError represents a structured error with code and details
type UndotError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *UndotError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *UndotError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *UndotError) Is(target error) bool {
	var targetErr *UndotError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new UndotError with the given code and message
func New(code ErrorCode, message string) *UndotError {
	return &UndotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new UndotError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *UndotError {
	return &UndotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an UndotError
func Wrap(err error, code ErrorCode, message string) *UndotError {
	if err == nil {
		return nil
	}
	return &UndotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *UndotError {
	if err == nil {
		return nil
	}
	return &UndotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *UndotError) WithDetail(key string, value interface{}) *UndotError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var undotErr *UndotError
	if errors.As(err, &undotErr) {
		return undotErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an UndotError
func GetErrorCode(err error) ErrorCode {
	var undotErr *UndotError
	if errors.As(err, &undotErr) {
		return undotErr.Code
	}
	return ErrUnknown
}
