// Package apperr defines the typed error taxonomy shared by handlers and
// middleware. Every failure raised on the request path is an *Error with a
// Kind; the terminal HTTP error handler maps the kind to a status code and
// renders the uniform response envelope.
package apperr

import "net/http"

// Kind enumerates the failure categories exposed by the API.
type Kind int

const (
	KindBadRequest Kind = iota
	KindUnauthorized
	KindForbidden // reserved; ownership misses report as NotFound instead
	KindNotFound
	KindConflict
	KindTooManyRequests
	KindInternal
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// FieldError is a validation failure scoped to a single input field. The
// client maps these directly onto form inputs.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries a failure kind, a human-readable message and optional
// field-scoped details. Err preserves the underlying cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict reports a duplicate-resource failure, optionally with field
// details (e.g. a taken email on signup).
func Conflict(message string, fields ...FieldError) *Error {
	return &Error{Kind: KindConflict, Message: message, Fields: fields}
}

func TooManyRequests(message string) *Error {
	return &Error{Kind: KindTooManyRequests, Message: message}
}

// Internal wraps an unexpected failure. The wrapped error is logged but
// never sent to the client outside of non-production mode.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// Validation builds a BadRequest error carrying one entry per failed
// field. Upload rejections use the same constructor so the client cannot
// distinguish the two failure sources.
func Validation(fields ...FieldError) *Error {
	return &Error{Kind: KindBadRequest, Message: "Validation failed", Fields: fields}
}
