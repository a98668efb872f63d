package apperror

import (
	"errors"
	"fmt"
)

// Kind is the machine readable category of an error returned by the core.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindForbidden       Kind = "forbidden"
	KindPartialCreation Kind = "partial_creation"
	KindProvider        Kind = "provider"
	KindRateLimited     Kind = "rate_limited"
	KindPersistence     Kind = "persistence"
	KindUnknown         Kind = "unknown"
)

type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

// Sentinels only carry a kind, errors.Is matches any *Error of that kind.
var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrForbidden   = &Error{Kind: KindForbidden}
	ErrProvider    = &Error{Kind: KindProvider}
	ErrRateLimited = &Error{Kind: KindRateLimited}
	ErrPersistence = &Error{Kind: KindPersistence}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func RateLimited(message string) *Error {
	return &Error{Kind: KindRateLimited, Message: message}
}

// Persistence wraps a storage failure. A nil err yields nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return &Error{Kind: KindPersistence, Message: op, Err: err}
}

// KindOf reports the kind of err, KindUnknown when err carries none.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var partial *PartialCreationError
	if errors.As(err, &partial) {
		return KindPartialCreation
	}
	var provider *ProviderError
	if errors.As(err, &provider) {
		return KindProvider
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
