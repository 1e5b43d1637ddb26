package models

import "errors"

// Response is the uniform envelope every operation resolves to, on the wire
// and at the facade. Failures carry a human-readable Message instead of a
// raised error, except for the fail-fast authentication guard on mutating
// real-API calls.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps a value in a successful envelope.
func OK[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: data}
}

// Fail builds a failed envelope with the given message.
func Fail[T any](message string) Response[T] {
	return Response[T]{Success: false, Message: message}
}

// FailErr builds a failed envelope from an error.
func FailErr[T any](err error) Response[T] {
	return Response[T]{Success: false, Message: err.Error(), Error: err.Error()}
}

// Error taxonomy. Backends return these (possibly wrapped); callers branch
// with errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrNotFound           = errors.New("not found")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("admin role required")
	ErrNetwork            = errors.New("network error")
	ErrHTTP               = errors.New("http error")
)
