// Package apierr classifies failures of the tracker and LLM HTTP clients.
//
// Every failure is an *Error with a Kind. Callers match kinds with errors.Is
// against the exported sentinels, or use errors.As to read the status code,
// message and retry hint.
package apierr

import (
	"errors"
	"fmt"
	"time"
)

// Kind is the category of a client failure.
type Kind int

const (
	KindAPI Kind = iota
	KindConfig
	KindTransport
	KindDecode
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindRateLimited
	KindInvalidRequest
)

var kindNames = map[Kind]string{
	KindAPI:            "api",
	KindConfig:         "config",
	KindTransport:      "transport",
	KindDecode:         "decode",
	KindUnauthorized:   "unauthorized",
	KindForbidden:      "forbidden",
	KindNotFound:       "not_found",
	KindRateLimited:    "rate_limited",
	KindInvalidRequest: "invalid_request",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrAPI            = errors.New("api error")
	ErrConfig         = errors.New("configuration error")
	ErrTransport      = errors.New("request failed")
	ErrDecode         = errors.New("failed to decode response")
	ErrUnauthorized   = errors.New("authentication failed")
	ErrForbidden      = errors.New("access forbidden")
	ErrNotFound       = errors.New("resource not found")
	ErrRateLimited    = errors.New("rate limit exceeded")
	ErrInvalidRequest = errors.New("invalid request")
)

var sentinels = map[Kind]error{
	KindAPI:            ErrAPI,
	KindConfig:         ErrConfig,
	KindTransport:      ErrTransport,
	KindDecode:         ErrDecode,
	KindUnauthorized:   ErrUnauthorized,
	KindForbidden:      ErrForbidden,
	KindNotFound:       ErrNotFound,
	KindRateLimited:    ErrRateLimited,
	KindInvalidRequest: ErrInvalidRequest,
}

// Error is a classified client failure.
type Error struct {
	Kind       Kind
	StatusCode int    // zero when no response was received
	Message    string // remote message, raw body for KindNotFound
	RetryAfter *time.Duration
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindConfig:
		return "configuration error: " + e.Message
	case KindTransport:
		return fmt.Sprintf("HTTP request failed: %v", e.Err)
	case KindDecode:
		return fmt.Sprintf("failed to parse JSON response: %v", e.Err)
	case KindUnauthorized:
		return "authentication failed: check your token"
	case KindForbidden:
		if e.Message != "" {
			return "access forbidden: " + e.Message
		}
		return "access forbidden"
	case KindNotFound:
		if e.Message != "" {
			return "resource not found: " + e.Message
		}
		return "resource not found"
	case KindRateLimited:
		if e.RetryAfter != nil {
			return fmt.Sprintf("rate limit exceeded, retry after %s", *e.RetryAfter)
		}
		return "rate limit exceeded"
	case KindInvalidRequest:
		return "invalid request: " + e.Message
	default:
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// Config returns a KindConfig error.
func Config(format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

// InvalidRequest returns a KindInvalidRequest error.
func InvalidRequest(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// Transport wraps a network level failure.
func Transport(err error) *Error {
	return &Error{Kind: KindTransport, Err: err}
}

// Decode wraps a JSON decoding failure of a successful response.
func Decode(err error) *Error {
	return &Error{Kind: KindDecode, Err: err}
}
