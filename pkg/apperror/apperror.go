package apperror

import (
	"errors"
	"fmt"
)

// Code is the machine-readable reason returned to callers.
type Code string

const (
	CodeInvalidRange  Code = "INVALID_RANGE"
	CodeConflict      Code = "CONFLICT"
	CodePriceMismatch Code = "PRICE_MISMATCH"
	CodeConfiguration Code = "CONFIGURATION"
	CodeValidation    Code = "VALIDATION"
	CodeNotFound      Code = "NOT_FOUND"
	CodeInvalidState  Code = "INVALID_STATE"
)

// Error carries a Code alongside a human message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrInvalidRange  = &Error{Code: CodeInvalidRange}
	ErrConflict      = &Error{Code: CodeConflict}
	ErrPriceMismatch = &Error{Code: CodePriceMismatch}
	ErrConfiguration = &Error{Code: CodeConfiguration}
	ErrValidation    = &Error{Code: CodeValidation}
	ErrNotFound      = &Error{Code: CodeNotFound}
	ErrInvalidState  = &Error{Code: CodeInvalidState}
)

func New(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func InvalidRange(format string, args ...any) *Error {
	return New(CodeInvalidRange, fmt.Sprintf(format, args...), nil)
}

func Conflict(format string, args ...any) *Error {
	return New(CodeConflict, fmt.Sprintf(format, args...), nil)
}

func PriceMismatch(format string, args ...any) *Error {
	return New(CodePriceMismatch, fmt.Sprintf(format, args...), nil)
}

func Configuration(format string, args ...any) *Error {
	return New(CodeConfiguration, fmt.Sprintf(format, args...), nil)
}

func Validation(format string, args ...any) *Error {
	return New(CodeValidation, fmt.Sprintf(format, args...), nil)
}

func NotFound(format string, args ...any) *Error {
	return New(CodeNotFound, fmt.Sprintf(format, args...), nil)
}

func InvalidState(format string, args ...any) *Error {
	return New(CodeInvalidState, fmt.Sprintf(format, args...), nil)
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsIntegrity reports whether err needs operator review rather than a user retry.
func IsIntegrity(err error) bool {
	switch CodeOf(err) {
	case CodePriceMismatch, CodeConfiguration:
		return true
	}
	return false
}
