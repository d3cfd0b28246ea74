package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping
type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindConflict      Kind = "conflict"
	KindUpstream      Kind = "upstream"
)

// Error is a classified application error. Sentinel values are declared
// with the constructors below and compared with errors.Is.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error

	base *Error
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

// Is matches the sentinel a message was derived from with Withf
func (e *Error) Is(target error) bool {
	return e.base != nil && target == error(e.base)
}

// Withf returns a copy of e carrying a formatted message. The copy still
// satisfies errors.Is(copy, e).
func (e *Error) Withf(format string, args ...interface{}) *Error {
	base := e
	if e.base != nil {
		base = e.base
	}
	return &Error{
		Kind:    e.Kind,
		Message: fmt.Sprintf(format, args...),
		Fields:  e.Fields,
		Err:     e.Err,
		base:    base,
	}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// ValidationFields builds a validation error carrying per-field messages
func ValidationFields(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Upstream wraps a storage or dependency failure
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// KindOf reports the kind of err. Anything unclassified is upstream.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUpstream
}

// StatusCode maps a kind to its HTTP status
func StatusCode(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
