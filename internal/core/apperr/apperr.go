// Package apperr defines the error codes shared by services and adapters.
package apperr

import (
	"errors"
	"fmt"
)

// Code classifies a failure so the HTTP layer can choose a response.
type Code int

const (
	// Storage means a write or read could not complete; any transaction was
	// rolled back.
	Storage Code = iota + 1000
	NotFound
	Conflict
	Validation
	PasswordMismatch
	InvalidCredentials
	Unauthorized
)

func (c Code) String() string {
	switch c {
	case Storage:
		return "storage"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Validation:
		return "validation"
	case PasswordMismatch:
		return "password_mismatch"
	case InvalidCredentials:
		return "invalid_credentials"
	case Unauthorized:
		return "unauthorized"
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Error is a coded application error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code Code, message string, err error) error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the outermost *Error in err's chain, or Storage
// for uncoded errors.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return Storage
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}
