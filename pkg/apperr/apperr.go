// Package apperr defines the caller-facing error taxonomy shared by the
// repository and HTTP layers. Callers should use errors.As / the Is* helpers
// to match kinds; Status maps an error to the HTTP status the boundary layer
// responds with.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a recoverable, caller-facing failure.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindBadRequest   Kind = "bad_request"
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation"
)

// Error carries a kind plus a safe, client-visible message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func BadRequest(msg string) *Error   { return &Error{Kind: KindBadRequest, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }

// KindOf returns the kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }
func IsBadRequest(err error) bool   { return KindOf(err) == KindBadRequest }
func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool   { return KindOf(err) == KindValidation }

// Status maps an error to an HTTP status code. Unclassified errors are the
// storage layer's problem surfacing; they become a generic 500.
func Status(err error) int {
	switch KindOf(err) {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindBadRequest, KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
