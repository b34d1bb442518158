// Package apperr defines the error kinds shared by every feature.
// Usecases return errors carrying a Kind; the transport layer maps the Kind to a status code.
package apperr

import (
	"errors"
)

// Kind classifies an error by how it should be reported to a client.
type Kind int

const (
	// KindInternal is an unexpected storage or serialization failure.
	KindInternal Kind = iota
	// KindValidation is bad input shape, length or emptiness.
	KindValidation
	// KindUnauthorized is a missing, invalid or expired credential.
	KindUnauthorized
	// KindNotFound is a missing resource or an ownership mismatch.
	KindNotFound
	// KindConflict is a uniqueness violation such as a duplicate email.
	KindConflict
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is an error tagged with a Kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// New returns an Error of the given kind. Sentinel errors are built with New.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap returns an Error of the given kind that wraps err.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Message returns the client-facing message of the first Error in err's chain.
// Internal errors never expose their message.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != KindInternal {
		return ae.Msg
	}
	return "internal server error"
}
