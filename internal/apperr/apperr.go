// Package apperr defines the error taxonomy shared by services and handlers.
// Handlers map the kind to a localized user reply; the router derives an
// error code for logs via Code.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for reply selection and logging.
type Kind string

const (
	KindTransport  Kind = "transport"
	KindValidation Kind = "validation"
	KindState      Kind = "state"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

// Error carries a kind, a message key for the localized user reply and an
// optional wrapped cause.
type Error struct {
	Kind Kind
	// MsgKey selects the localized text shown to the user.
	MsgKey string
	// Status optionally reports an existing payment status on conflicts.
	Status string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.MsgKey != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.MsgKey)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the log-facing error code derived from the kind.
func (e *Error) Code() string {
	switch e.Kind {
	case KindTransport:
		return "TRANSPORT"
	case KindValidation:
		return "VALIDATION"
	case KindState:
		return "STATE"
	case KindConflict:
		return "CONFLICT"
	case KindNotFound:
		return "NOT_FOUND"
	default:
		return "INTERNAL"
	}
}

// New builds an error of the given kind with a message key.
func New(kind Kind, msgKey string) *Error {
	return &Error{Kind: kind, MsgKey: msgKey}
}

// Wrap builds an error of the given kind around a cause.
func Wrap(kind Kind, msgKey string, err error) *Error {
	return &Error{Kind: kind, MsgKey: msgKey, Err: err}
}

// Conflict builds a conflict error carrying the blocking payment status.
func Conflict(msgKey, status string) *Error {
	return &Error{Kind: KindConflict, MsgKey: msgKey, Status: status}
}

// KindOf extracts the kind from err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// MsgKeyOf extracts the message key from err, if err is an *Error.
func MsgKeyOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.MsgKey
	}
	return ""
}

// StatusOf extracts the status attached to err, if any.
func StatusOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
