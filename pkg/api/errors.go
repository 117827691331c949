// Package api defines the wire-level types shared by every HMES console
// endpoint family: the response envelope and the error taxonomy the client
// holds the server to. All failures crossing the client boundary are *Error
// values wrapping one of the sentinel kinds below, so callers dispatch with
// errors.Is and never see a raw transport or decoding failure.
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every *Error wraps exactly one of these.
var (
	// ErrNetworkUnavailable is returned when the transport could not reach
	// the service at all (DNS failure, refused connection, timeout).
	ErrNetworkUnavailable = errors.New("service unreachable")

	// ErrUnauthorized is returned for a missing, invalid, or expired token.
	// The caller is responsible for triggering logout or re-login.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the authenticated user may not perform
	// the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrValidationFailed is returned for a non-2xx response describing bad
	// input, carrying the server-supplied message when present.
	ErrValidationFailed = errors.New("validation failed")

	// ErrMalformedResponse is returned for a 2xx response whose body is
	// missing expected fields (e.g. a login success without a token).
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNotImplemented is returned by explicit stub operations. It is
	// distinguishable from a failed call: the operation was never attempted.
	ErrNotImplemented = errors.New("not implemented")
)

// Error is the typed failure returned by the session and resource layers.
// Kind is always one of the sentinel errors above; Status is the HTTP status
// when one was received (0 otherwise); Message is the server-supplied message
// when present, else a client-side fallback.
type Error struct {
	Kind    error
	Status  int
	Message string
}

// Error renders the server message when present, else the kind.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	return msg
}

// Unwrap exposes the kind for errors.Is matching.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Unavailable wraps a transport-level failure as ErrNetworkUnavailable.
func Unavailable(cause error) *Error {
	return &Error{Kind: ErrNetworkUnavailable, Message: cause.Error()}
}

// Malformed reports a 2xx response that did not carry the expected shape.
func Malformed(detail string) *Error {
	return &Error{Kind: ErrMalformedResponse, Message: detail}
}

// NotImplemented reports an explicit stub operation.
func NotImplemented(op string) *Error {
	return &Error{Kind: ErrNotImplemented, Message: op + " is not implemented"}
}

// FromStatus maps a non-2xx HTTP status and optional server message to a
// typed error. Statuses outside the enumerated taxonomy map to
// ErrValidationFailed: the console surfaces them to the user with the server
// message, which is all the original client ever did with them.
func FromStatus(status int, message string) *Error {
	kind := ErrValidationFailed
	switch status {
	case http.StatusUnauthorized:
		kind = ErrUnauthorized
	case http.StatusForbidden:
		kind = ErrForbidden
	case http.StatusNotFound:
		kind = ErrNotFound
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

// WithFallback fills in a fixed per-operation message on typed errors that
// arrived without a server-supplied one. Non-*Error values pass through.
func WithFallback(err error, fallback string) error {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message == "" {
		apiErr.Message = fallback
	}
	return err
}
