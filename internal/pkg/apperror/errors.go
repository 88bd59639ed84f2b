// Package apperror defines the error taxonomy shared by the billing service
// and its mapping onto HTTP status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the request boundary
type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindProvider
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindProvider:
		return "provider_error"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is a classified error with a caller-safe message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind. An empty target message
// matches any message of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Kind-only sentinels for errors.Is checks
var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrAuth        = &Error{Kind: KindAuth}
	ErrForbidden   = &Error{Kind: KindForbidden}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrConflict    = &Error{Kind: KindConflict}
	ErrProvider    = &Error{Kind: KindProvider}
	ErrUnavailable = &Error{Kind: KindUnavailable}
)

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validation(msg string) *Error { return New(KindValidation, msg) }

func Validationf(format string, args ...interface{}) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

func Auth(msg string) *Error { return New(KindAuth, msg) }

func Forbidden(msg string) *Error { return New(KindForbidden, msg) }

func NotFound(msg string) *Error { return New(KindNotFound, msg) }

func Conflict(msg string) *Error { return New(KindConflict, msg) }

func Provider(msg string, err error) *Error { return Wrap(KindProvider, msg, err) }

func Unavailable(msg string) *Error { return New(KindUnavailable, msg) }

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps err onto a response status code
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindProvider:
		return http.StatusBadGateway
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns a message that is safe to send to a client.
// Internal errors never leak their cause.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "internal server error"
}
