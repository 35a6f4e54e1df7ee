// Package errors provides error handling for stringscope.
//
// It re-exports github.com/cockroachdb/errors (stack traces, wrapping,
// hints) and defines the sentinel errors the HTTP layer maps to status codes.
//
//	if err := store.Create(ctx, rec); err != nil {
//	    return errors.Wrap(err, "create record")
//	}
//
//	if errors.Is(err, errors.ErrConflict) {
//	    // 409
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf

	// WithHint attaches a user-facing suggestion
	WithHint = crdb.WithHint

	Is = crdb.Is
	As = crdb.As
)

// Taxonomy sentinels. Wrap them to add context; check with Is.
var (
	// ErrInvalidInput indicates a missing, empty or malformed value or parameter
	ErrInvalidInput = New("invalid input")

	// ErrUnprocessable indicates a well-formed request carrying a value of the wrong type
	ErrUnprocessable = New("unprocessable input")

	// ErrNotFound indicates no record exists for the requested value
	ErrNotFound = New("not found")

	// ErrConflict indicates the value is already stored
	ErrConflict = New("already exists")

	// ErrUninterpretable indicates a natural-language query matched no rule
	ErrUninterpretable = New("uninterpretable query")
)

// NewInvalidInputError creates an invalid-input error with a formatted message.
// The formatted message is what Message returns.
func NewInvalidInputError(format string, args ...interface{}) error {
	return mark(Newf(format, args...), ErrInvalidInput)
}

// NewUnprocessableError creates an unprocessable error with a formatted message
func NewUnprocessableError(format string, args ...interface{}) error {
	return mark(Newf(format, args...), ErrUnprocessable)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return mark(Newf(format, args...), ErrNotFound)
}

// NewConflictError creates a conflict error with a formatted message
func NewConflictError(format string, args ...interface{}) error {
	return mark(Newf(format, args...), ErrConflict)
}

// NewUninterpretableError creates an uninterpretable-query error with a formatted message
func NewUninterpretableError(format string, args ...interface{}) error {
	return mark(Newf(format, args...), ErrUninterpretable)
}

// mark tags err so that Is(err, reference) holds without changing its message.
var mark = crdb.Mark
