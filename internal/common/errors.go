// Package common defines the error taxonomy and small helpers shared by the
// storage, records and CLI layers. Callers should use errors.Is to match the
// sentinel values, or KindOf to recover the Kind of a returned error.
package common

import (
	"errors"
	"fmt"
)

// Kind classifies an expected failure of a registry operation.
type Kind string

const (
	KindValidation         Kind = "validation"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindNotFound           Kind = "not_found"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindStorage            Kind = "storage"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email/password")
	ErrStorage            = errors.New("storage error")
)

var sentinels = map[Kind]error{
	KindValidation:         ErrValidation,
	KindDuplicateEmail:     ErrDuplicateEmail,
	KindNotFound:           ErrNotFound,
	KindInvalidCredentials: ErrInvalidCredentials,
	KindStorage:            ErrStorage,
}

// StorageMessage is what users see when the substrate fails. The cause is
// only logged.
const StorageMessage = "storage unavailable, please reload"

// Error carries a Kind, a human-readable message and an optional cause.
// It unwraps to both the Kind sentinel and the cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindStorage {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := sentinels[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewError builds an *Error with a formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation, NotFound etc. are shorthands for NewError.
func Validation(format string, args ...any) *Error {
	return NewError(KindValidation, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return NewError(KindNotFound, format, args...)
}

func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: ErrInvalidCredentials.Error()}
}

func DuplicateEmail(email string) *Error {
	return NewError(KindDuplicateEmail, "email %s is already registered", email)
}

// Storage wraps a substrate failure. The message stays generic.
func Storage(cause error) *Error {
	return &Error{Kind: KindStorage, Message: StorageMessage, Err: cause}
}

// KindOf returns the Kind of err. Errors that carry no Kind are reported as
// KindStorage, since anything unexpected comes from the substrate.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	for k, s := range sentinels {
		if errors.Is(err, s) {
			return k
		}
	}
	return KindStorage
}
