// Package service orchestrates the catalog: it runs each write in a single
// transaction over the repositories, enforces existence and domain rules,
// and reports failures as *Error values with a Kind the HTTP layer maps to a
// status code.
package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
)

// Error is the single failure shape returned by services.  Err, when set,
// is the underlying cause and is reachable through errors.Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, ErrNotFound)
// works for every not-found message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict     = &Error{Kind: KindConflict, Message: "conflict"}
	ErrValidation   = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
)

// NotFound names the resource and the requested id, e.g.
// "Movie with ID 42 not found".
func NotFound(resource string, id uint64) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with ID %d not found", resource, id)}
}

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

// KindOf returns the Kind of err, or "" for errors that did not originate
// in this package.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
