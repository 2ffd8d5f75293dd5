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

	// Asset errors
	ErrCodeAssetsUnreadable ErrorCode = "ASSETS_UNREADABLE"
	ErrCodeImageMissing     ErrorCode = "IMAGE_MISSING"
	ErrCodeImageDecode      ErrorCode = "IMAGE_DECODE"

	// Presenter and session errors
	ErrCodeNoWorkers       ErrorCode = "NO_WORKERS"
	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// PraiseError represents a structured error with context
type PraiseError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *PraiseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PraiseError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *PraiseError) WithDetail(key string, value interface{}) *PraiseError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *PraiseError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new PraiseError
func New(code ErrorCode, message string) *PraiseError {
	return &PraiseError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PraiseError
func Wrap(err error, code ErrorCode, message string) *PraiseError {
	return &PraiseError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific PraiseError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	praiseErr, ok := err.(*PraiseError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return praiseErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	praiseErr, ok := err.(*PraiseError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return praiseErr.Code
}

// As returns the first PraiseError in the chain, if any.
func As(err error) (*PraiseError, bool) {
	for err != nil {
		if praiseErr, ok := err.(*PraiseError); ok {
			return praiseErr, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = unwrapper.Unwrap()
	}
	return nil, false
}
