package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every business failure wraps exactly one of them.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
)

// ErrCapacityExceeded is returned when approving an application for a mission without open slots.
var ErrCapacityExceeded = &Error{Kind: ErrConflict, Msg: "mission has no open slots left"}

// Error is a business failure carrying a message that can be shown to API clients.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NotFound(entity string, id uint) *Error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf("%s with ID %d not found", entity, id)}
}

func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: ErrInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...any) *Error {
	return &Error{Kind: ErrInvalidState, Msg: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: ErrForbidden, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
