// Package errors gives pipeline failures a stable code for the HTTP and CLI surfaces.
package errors

import (
	stderrors "errors"
	"fmt"

	"diabex/domain/core"
)

// Error codes
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeNotFound         = "NOT_FOUND"
	CodeParseError       = "PARSE_ERROR"
	CodeEmptyTable       = "EMPTY_TABLE"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeMissingColumn    = "MISSING_COLUMN"
	CodeInvalidSelection = "INVALID_SELECTION"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeUnknown          = "UNKNOWN"
)

// AppError carries a machine-readable code next to the error chain.
// An empty Message defers to the cause's text.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	switch {
	case e.Cause == nil:
		return e.Message
	case e.Message == "":
		return e.Cause.Error()
	default:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError without a cause
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func ConfigInvalid(message string) *AppError { return New(CodeConfigInvalid, message) }
func InvalidInput(message string) *AppError  { return New(CodeInvalidInput, message) }
func InternalError(message string) *AppError { return New(CodeInternalError, message) }

// domainCodes pairs pipeline sentinels with their codes; first match wins.
var domainCodes = []struct {
	sentinel error
	code     string
}{
	{core.ErrNotFound, CodeNotFound},
	{core.ErrParse, CodeParseError},
	{core.ErrEmptyTable, CodeEmptyTable},
	{core.ErrInsufficientData, CodeInsufficientData},
	{core.ErrMissingColumn, CodeMissingColumn},
	{core.ErrInvalidSelection, CodeInvalidSelection},
}

// CodeForDomain maps an error wrapping a domain sentinel to its code.
func CodeForDomain(err error) string {
	for _, dc := range domainCodes {
		if stderrors.Is(err, dc.sentinel) {
			return dc.code
		}
	}
	return CodeInternalError
}

// codeOf prefers a code already in the chain over the domain mapping
func codeOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeForDomain(err)
}

// Wrap adds context to err and keeps the code found in its chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: codeOf(err), Message: message, Cause: err}
}

// FromDomain returns err as an AppError, deriving the code from the chain
// when err is not one already.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return &AppError{Code: codeOf(err), Cause: err}
}

// IsAppError reports whether the chain contains an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code found in the chain, or CodeUnknown
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}
