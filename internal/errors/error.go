package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryArgument Category = "argument"
	CategoryDocument Category = "document"
	CategoryRegistry Category = "registry"
	CategoryInput    Category = "input"
)

// Code is a stable numeric failure code.
type Code int

const (
	CodeNotElement           Code = 101
	CodeUnknownArchetype     Code = 102
	CodeElementGone          Code = 201
	CodeParentNotFound       Code = 202
	CodeDuplicateAlias       Code = 301
	CodeInvalidArchetypeFile Code = 401
	CodeInvalidConfig        Code = 402
	CodeInvalidSelector      Code = 403
)

// Sentinels for errors.Is. Matching is by code only.
var (
	ErrNotElement           = &ForgeError{Code: CodeNotElement}
	ErrUnknownArchetype     = &ForgeError{Code: CodeUnknownArchetype}
	ErrElementGone          = &ForgeError{Code: CodeElementGone}
	ErrParentNotFound       = &ForgeError{Code: CodeParentNotFound}
	ErrDuplicateAlias       = &ForgeError{Code: CodeDuplicateAlias}
	ErrInvalidArchetypeFile = &ForgeError{Code: CodeInvalidArchetypeFile}
	ErrInvalidConfig        = &ForgeError{Code: CodeInvalidConfig}
	ErrInvalidSelector      = &ForgeError{Code: CodeInvalidSelector}
)

// ForgeError is a coded failure with an optional subject and hint.
type ForgeError struct {
	// Code is the stable numeric identifier (e.g., 201).
	Code Code

	// Category is the error family.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Subject names the alias, archetype, selector or file involved.
	Subject string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ForgeError) Error() string {
	msg := fmt.Sprintf("[forge] %d : %s", e.Code, e.Message)
	if e.Subject != "" {
		msg += fmt.Sprintf(" (%s)", e.Subject)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ForgeError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a ForgeError with the same code.
func (e *ForgeError) Is(target error) bool {
	t, ok := target.(*ForgeError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithSubject records what the failure concerns.
func (e *ForgeError) WithSubject(s string) *ForgeError {
	e.Subject = s
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ForgeError) WithSuggestion(s string) *ForgeError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ForgeError) WithDetail(d string) *ForgeError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *ForgeError) Wrap(err error) *ForgeError {
	e.Wrapped = err
	return e
}

// New creates a ForgeError from a registered error code.
func New(code Code) *ForgeError {
	template, ok := registry[code]
	if !ok {
		return &ForgeError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ForgeError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// FromError wraps a standard error in a ForgeError.
// An error that already carries a code is returned unchanged.
func FromError(err error, code Code) *ForgeError {
	if err == nil {
		return nil
	}
	var fe *ForgeError
	if stderrors.As(err, &fe) {
		return fe
	}
	return New(code).Wrap(err)
}

// CodeOf extracts the code of the first ForgeError in err's chain.
func CodeOf(err error) (Code, bool) {
	var fe *ForgeError
	if stderrors.As(err, &fe) {
		return fe.Code, true
	}
	return 0, false
}

// Is is errors.Is, re-exported so callers need a single import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
