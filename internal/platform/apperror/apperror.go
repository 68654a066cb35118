// Package apperror defines the error taxonomy shared by the domain and the HTTP boundary.
package apperror

import (
	"errors"
	"fmt"
)

// Code classifies an application error. The HTTP layer maps each code to a status.
type Code string

const (
	CodeNotFound   Code = "NOT_FOUND"
	CodeForbidden  Code = "FORBIDDEN"
	CodeValidation Code = "VALIDATION_ERROR"
	CodeConflict   Code = "CONFLICT"
	CodeInternal   Code = "INTERNAL_ERROR"
)

// AppError is a classified, caller-facing error.
type AppError struct {
	Code    Code
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewNotFoundError reports a missing entity, e.g. NewNotFoundError("Booking", 42).
func NewNotFoundError(entity string, id any) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with id=%v not found", entity, id),
	}
}

// NewForbiddenError reports an actor that is structurally not allowed to perform an action.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// NewValidationError reports a business-rule violation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewConflictError reports a state that contradicts the requested change.
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewInvalidStateError reports a forbidden status transition.
func NewInvalidStateError(from, to string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

// Wrap attaches a classification to an underlying error, keeping it reachable via errors.Is.
func Wrap(code Code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// CodeOf returns the classification of err, or CodeInternal for unclassified errors.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func IsNotFound(err error) bool   { return CodeOf(err) == CodeNotFound }
func IsForbidden(err error) bool  { return CodeOf(err) == CodeForbidden }
func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }
func IsConflict(err error) bool   { return CodeOf(err) == CodeConflict }
