// Package serrors defines the semantic error kinds used across the console.
// A kinded error keeps its human-readable message separate from its cause so
// that views can surface the message while logs keep the full chain.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a sentinel for one category of failure. Kinds are created with
// NewKind and matched with errors.Is.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind.
func NewKind(name string) Kind { return kind{s: name} }

// Failure categories surfaced by the console.
var (
	// ErrValidation is raised before any network call when required input is missing.
	ErrValidation = NewKind("VALIDATION")
	// ErrRejected means the backend answered but reported failure.
	ErrRejected = NewKind("SERVER_REJECTION")
	// ErrTransport covers network and decoding failures.
	ErrTransport = NewKind("TRANSPORT")
	// ErrTerminal means the backend explicitly reported that a scan failed.
	ErrTerminal = NewKind("TERMINAL_FAILURE")
	// ErrNotFound indicates the requested resource does not exist on the backend.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrCancelled marks work discarded because it was superseded.
	ErrCancelled = NewKind("CANCELLED")
)

// Error carries a kind, an optional cause and an optional message.
//
// Error() renders "<msg>: <cause>" when both are set, otherwise whichever is
// present, falling back to the kind name. errors.Is and errors.As match both
// the kind and the cause chain.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With builds a kinded error with a formatted message and no cause.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap builds a kinded error around cause with a formatted message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly builds an error carrying only its kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	case e.kind != nil:
		return e.kind.Error()
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.err }

// Is matches the kind sentinel as well as the wrapped cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}

	return e.err != nil && errors.Is(e.err, target)
}

// As matches the kind sentinel as well as the wrapped cause.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}

	return e.err != nil && errors.As(e.err, target)
}

// Kind returns the kind sentinel, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message without the cause.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause, or nil.
func (e *Error) Cause() error { return e.err }

// KindOf returns the kind of the first *Error found in err's chain.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.kind
	}

	return nil
}

// UserMessage returns the text a view should show for err: the message of the
// outermost kinded error when it has one, otherwise err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) && se.msg != "" {
		return se.msg
	}

	return err.Error()
}
