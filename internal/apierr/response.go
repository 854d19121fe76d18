package apierr

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody bounds how much of a failed response is read into memory.
const maxErrorBody = 1 << 20

// maxRetryAfterSeconds is the largest hint that fits in a time.Duration.
const maxRetryAfterSeconds = uint64(math.MaxInt64 / int64(time.Second))

// CheckResponse returns nil for 2xx responses. For any other status it
// returns the classified *Error:
//
//	401 -> KindUnauthorized (body not read)
//	403 -> KindForbidden
//	404 -> KindNotFound, Message is the raw body
//	429 -> KindRateLimited, RetryAfter from a numeric Retry-After header
//	*   -> KindAPI, Message from the JSON error envelope or the raw body
//
// The kind depends on the status alone. A body that cannot be read leaves
// Message empty.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return &Error{Kind: KindUnauthorized, StatusCode: resp.StatusCode}
	}

	retryAfter := ParseRetryAfter(resp.Header.Get("Retry-After"))

	var body []byte
	if resp.Body != nil {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err == nil {
			body = b
		}
	}
	text := string(body)

	switch resp.StatusCode {
	case http.StatusForbidden:
		return &Error{Kind: KindForbidden, StatusCode: resp.StatusCode, Message: errorMessage(body, text)}
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, StatusCode: resp.StatusCode, Message: text}
	case http.StatusTooManyRequests:
		return &Error{
			Kind:       KindRateLimited,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, text),
			RetryAfter: retryAfter,
		}
	default:
		return &Error{Kind: KindAPI, StatusCode: resp.StatusCode, Message: errorMessage(body, text)}
	}
}

// ParseRetryAfter parses a Retry-After header given in whole seconds.
// HTTP-date values and garbage yield nil.
func ParseRetryAfter(value string) *time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	secs, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil
	}
	if secs > maxRetryAfterSeconds {
		secs = maxRetryAfterSeconds
	}
	d := time.Duration(secs) * time.Second
	return &d
}

// errorEnvelope covers both the OpenAI-style {"error":{"message":...}} body
// and the tracker's {"errorMessages":[...]} body.
type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type,omitempty"`
		Code    any    `json:"code,omitempty"`
	} `json:"error"`
	ErrorMessages []string `json:"errorMessages"`
}

func errorMessage(body []byte, fallback string) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fallback
	}
	if env.Error != nil && env.Error.Message != "" {
		return env.Error.Message
	}
	if len(env.ErrorMessages) > 0 {
		return strings.Join(env.ErrorMessages, "; ")
	}
	return fallback
}
