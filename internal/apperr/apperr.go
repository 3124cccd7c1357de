// Package apperr carries the error kinds services hand back to the HTTP
// layer, which owns the mapping to status codes.
package apperr

import "errors"

type Kind int

const (
	NotFound Kind = iota + 1
	Conflict
	Unauthorized
	InvalidCredentials
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// IsKind reports whether err is (or wraps) an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
