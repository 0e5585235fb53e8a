// Package apperror defines the error classes every domain error falls into.
// Handlers map the class to a status code; the wrapped message is shown to the caller.
package apperror

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrNotFound        = errors.New("not found")
)

// Error is a domain error with a human-readable reason and a class.
type Error struct {
	class  error
	reason string
}

func (e *Error) Error() string {
	return e.reason
}

func (e *Error) Is(target error) bool {
	return target == e.class
}

func (e *Error) Unwrap() error {
	return e.class
}

func Unauthenticated(reason string) error {
	return &Error{class: ErrUnauthenticated, reason: reason}
}

func Forbidden(reason string) error {
	return &Error{class: ErrForbidden, reason: reason}
}

func Invalid(reason string) error {
	return &Error{class: ErrInvalidRequest, reason: reason}
}

func NotFound(reason string) error {
	return &Error{class: ErrNotFound, reason: reason}
}
