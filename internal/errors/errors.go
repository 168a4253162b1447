package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// IsCode reports whether err is an AppError carrying the given code
func IsCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// Predefined error codes
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeTransport        = "TRANSPORT_ERROR"
	CodeNonTabular       = "NON_TABULAR_RESPONSE"
	CodeSourceExhausted  = "SOURCE_EXHAUSTED"
	CodeSchemaResolution = "SCHEMA_RESOLUTION_FAILURE"
	CodeInvalidService   = "INVALID_SERVICE"
	CodeInvalidPincode   = "INVALID_PINCODE"
	CodePincodeNotFound  = "PINCODE_NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func TransportFailed(url string, cause error) *AppError {
	return &AppError{
		Code:    CodeTransport,
		Message: fmt.Sprintf("fetch failed for %s", url),
		Cause:   cause,
	}
}

func NonTabular(url string) *AppError {
	return New(CodeNonTabular, fmt.Sprintf("response from %s is not tabular", url))
}

func SourceExhausted(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeSourceExhausted,
		Message: message,
		Cause:   cause,
	}
}

func SchemaResolutionFailure(cause error) *AppError {
	return &AppError{
		Code:    CodeSchemaResolution,
		Message: "could not resolve required columns",
		Cause:   cause,
	}
}

func InvalidService(message string) *AppError {
	return New(CodeInvalidService, message)
}

func InvalidPincode(message string) *AppError {
	return New(CodeInvalidPincode, message)
}

func PincodeNotFound(pin string) *AppError {
	return New(CodePincodeNotFound, fmt.Sprintf("pincode %s not found", pin))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
