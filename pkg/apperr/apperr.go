package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error so the HTTP boundary can map it to a
// status code without inspecting error strings.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthRequired
	KindAuthFailed
	KindNotFound
	KindConflict
	KindGone
	KindUpstream
)

// Error is a classified application error. Services return it (usually
// wrapped) instead of writing HTTP responses themselves; response.WriteError
// performs the single Kind -> status translation at the boundary.
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

func (e *Error) Unwrap() error { return e.Err }

// New returns a classified error with a human-readable message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to a classified error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Newf is New with fmt-style formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf extracts the classified message from err; unclassified errors get
// a generic message so internals never leak to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "something went wrong"
}

// Status maps a Kind to an HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthRequired, KindAuthFailed:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindGone:
		return http.StatusGone
	case KindUpstream, KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// StatusOf is Status(KindOf(err)).
func StatusOf(err error) int { return Status(KindOf(err)) }
