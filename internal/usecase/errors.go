package usecase

import (
	"errors"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// ErrorKind is the closed set of failure categories a use case can report.
type ErrorKind string

const (
	KindValidation   ErrorKind = "ValidationError"
	KindNotFound     ErrorKind = "NotFound"
	KindInvalidState ErrorKind = "InvalidState"
	KindConflict     ErrorKind = "Conflict"
	KindUnauthorized ErrorKind = "Unauthorized"
	KindForbidden    ErrorKind = "Forbidden"
	KindInternal     ErrorKind = "InternalError"
)

// KindOf classifies err. Anything not tagged with a known sentinel is internal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case crerr.Is(err, ErrInternal):
		return KindInternal
	case crerr.Is(err, ErrInvalidInput):
		return KindValidation
	case crerr.Is(err, ErrNotFound):
		return KindNotFound
	case crerr.Is(err, ErrInvalidState):
		return KindInvalidState
	case crerr.Is(err, ErrConflict):
		return KindConflict
	case crerr.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case crerr.Is(err, ErrForbidden):
		return KindForbidden
	default:
		return KindInternal
	}
}

// internalError keeps the store failure as the cause and marks the chain as
// ErrInternal.
func internalError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return crerr.Mark(crerr.Wrapf(err, format, args...), ErrInternal)
}
