package opendota

import (
	"errors"
	"fmt"
)

// Kind discriminates error variants so callers can branch on the kind of
// failure without depending on type identity.
type Kind string

const (
	KindValidation Kind = "validation"
	KindTimeout    Kind = "timeout"
	KindAPI        Kind = "api"
	KindUnexpected Kind = "unexpected"
)

// Error is the single error shape for this package and the layers above it.
// Status is an HTTP-equivalent code; Detail carries the raw upstream error
// body when one was received.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Detail  string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d): %s: %s", e.Kind, e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
}

// Validation reports malformed input that never reached the upstream API.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: 400, Message: msg}
}

// Timeout reports an upstream call that exceeded the configured timeout.
func Timeout(msg string) *Error {
	return &Error{Kind: KindTimeout, Status: 504, Message: msg}
}

// API reports any other upstream failure. A missing status defaults to 500.
func API(status int, detail string) *Error {
	if status == 0 {
		status = 500
	}
	return &Error{Kind: KindAPI, Status: status, Message: "OpenDota API error", Detail: detail}
}

// AsError normalizes any error into an *Error, wrapping unclassified ones
// as KindUnexpected.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindUnexpected, Status: 500, Message: err.Error()}
}
