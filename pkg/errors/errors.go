package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// Convergence failures surfaced to callers. OS-level failures map
	// 1:1 into the first four; everything unrecognized becomes ErrUnknown.
	ErrNotFound         ErrorCode = "NOT_FOUND"
	ErrIsADirectory     ErrorCode = "IS_A_DIRECTORY"
	ErrNotPermitted     ErrorCode = "OPERATION_NOT_PERMITTED"
	ErrPermissionDenied ErrorCode = "PERMISSION_DENIED"
	ErrLinkTypeMismatch ErrorCode = "LINK_TYPE_MISMATCH"
	ErrUnknown          ErrorCode = "UNKNOWN"

	// Input and caller-side errors
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrOwnerLookup   ErrorCode = "OWNER_LOOKUP"
	ErrManifestLoad  ErrorCode = "MANIFEST_LOAD"
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"
	ErrBackup        ErrorCode = "BACKUP"
)

// RelinkError represents a structured error with code, offending path,
// and underlying cause. Callers render messages; this type only carries
// the structure.
type RelinkError struct {
	Code    ErrorCode
	Message string
	Path    string
	Wrapped error
}

// Error implements the error interface
func (e *RelinkError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Message, e.Path)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap implements the errors.Unwrap interface
func (e *RelinkError) Unwrap() error {
	return e.Wrapped
}

// Is matches errors by code so tests can compare against sentinel values
func (e *RelinkError) Is(target error) bool {
	var targetErr *RelinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RelinkError with the given code and message
func New(code ErrorCode, message string) *RelinkError {
	return &RelinkError{Code: code, Message: message}
}

// Newf creates a new RelinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RelinkError {
	return &RelinkError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a RelinkError
func Wrap(err error, code ErrorCode, message string) *RelinkError {
	if err == nil {
		return nil
	}
	return &RelinkError{Code: code, Message: message, Wrapped: err}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RelinkError {
	if err == nil {
		return nil
	}
	return &RelinkError{Code: code, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// WithPath records the offending path on the error
func (e *RelinkError) WithPath(path string) *RelinkError {
	e.Path = path
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var relinkErr *RelinkError
	if errors.As(err, &relinkErr) {
		return relinkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if it
// is not a RelinkError
func GetErrorCode(err error) ErrorCode {
	var relinkErr *RelinkError
	if errors.As(err, &relinkErr) {
		return relinkErr.Code
	}
	return ErrUnknown
}

// GetErrorPath returns the offending path from an error, or "" if it is
// not a RelinkError
func GetErrorPath(err error) string {
	var relinkErr *RelinkError
	if errors.As(err, &relinkErr) {
		return relinkErr.Path
	}
	return ""
}
