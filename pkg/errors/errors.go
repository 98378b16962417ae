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

	// Argument errors
	ErrMissingArgument    ErrorCode = "MISSING_ARGUMENT"
	ErrInvalidPrinterName ErrorCode = "INVALID_PRINTER_NAME"
	ErrMalformedOptions   ErrorCode = "MALFORMED_OPTIONS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Template errors
	ErrTemplateLoad    ErrorCode = "TEMPLATE_LOAD"
	ErrTemplateInvalid ErrorCode = "TEMPLATE_INVALID"

	// CSV errors
	ErrDelimiterNotFound ErrorCode = "DELIMITER_NOT_FOUND"
	ErrCSVParse          ErrorCode = "CSV_PARSE"

	// FileSystem errors
	ErrFileNotFound     ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess       ErrorCode = "FILE_ACCESS"
	ErrFileWrite        ErrorCode = "FILE_WRITE"
	ErrDirCreate        ErrorCode = "DIR_CREATE"
	ErrRepoNotWritable  ErrorCode = "REPO_NOT_WRITABLE"
	ErrEncodeDescriptor ErrorCode = "ENCODE_DESCRIPTOR"
	ErrPathEscape       ErrorCode = "PATH_ESCAPE"
)

// usageCodes are the codes caused by bad command line input. The command
// prints usage text after the error message for these.
var usageCodes = map[ErrorCode]bool{
	ErrMissingArgument: true,
	ErrInvalidInput:    true,
}

// Error represents a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an Error
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pgErr *Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an *Error
func GetErrorCode(err error) ErrorCode {
	var pgErr *Error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an *Error
func GetErrorDetails(err error) map[string]interface{} {
	var pgErr *Error
	if errors.As(err, &pgErr) {
		return pgErr.Details
	}
	return nil
}

// ShowsUsage reports whether the error came from bad command line input.
func ShowsUsage(err error) bool {
	return usageCodes[GetErrorCode(err)]
}

// Message returns the human readable message of an *Error without its code
// prefix. Other errors are returned as-is.
func Message(err error) string {
	var pgErr *Error
	if errors.As(err, &pgErr) {
		if pgErr.Wrapped != nil {
			return fmt.Sprintf("%s: %v", pgErr.Message, pgErr.Wrapped)
		}
		return pgErr.Message
	}
	return err.Error()
}
