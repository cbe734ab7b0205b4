// Package apperr defines the error kinds the API distinguishes between.
// Handlers and services attach these to the gin context; the central
// error middleware maps them to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// KindInternal is the default for anything unclassified.
	KindInternal Kind = iota
	// KindValidation covers schema violations in request payloads.
	KindValidation
	// KindNotFound covers missing listings, reviews and users.
	KindNotFound
	// KindUpstream covers failures of external collaborators that are
	// caused by bad input, e.g. a location the geocoder cannot resolve.
	KindUpstream
	// KindUnauthorized covers requests without a valid principal.
	KindUnauthorized
	// KindForbidden covers ownership and authorship violations.
	KindForbidden
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Upstream(message string) *Error {
	return &Error{Kind: KindUpstream, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Something went wrong", Err: err}
}

// KindOf returns the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// StatusOf maps an error to the HTTP status the central handler responds with.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation, KindUpstream:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// MessageOf returns a user-facing message. Internal errors are replaced
// with a generic message so details never leak to clients.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != KindInternal {
		return ae.Message
	}
	return "Something went wrong"
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
