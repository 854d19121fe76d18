// Package httpclient builds the *http.Client used by the API clients.
package httpclient

import (
	"net/http"
	"net/url"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// RequestIDHeader is set on every outgoing request.
const RequestIDHeader = "X-Request-Id"

// Options configures a client.
type Options struct {
	Timeout   time.Duration // zero means no timeout
	Proxy     *url.URL      // nil falls back to the standard proxy environment variables
	UserAgent string
}

// New returns an *http.Client with its own transport. Each request gets a
// fresh X-Request-Id and is traced at debug level.
func New(opts Options) *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if opts.Proxy != nil {
		base.Proxy = http.ProxyURL(opts.Proxy)
	}

	return &http.Client{
		Timeout: opts.Timeout,
		Transport: &tracingTransport{
			base:      base,
			log:       clog.Default().WithPrefix("http"),
			userAgent: opts.UserAgent,
		},
	}
}

type tracingTransport struct {
	base      http.RoundTripper
	log       *clog.Logger
	userAgent string
}

func (t *tracingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	requestID := req.Header.Get(RequestIDHeader)
	start := time.Now()
	t.log.Debug("Sending request", "method", req.Method, "url", redactedURL(req.URL), "requestID", requestID)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.Debug("Request failed", "method", req.Method, "requestID", requestID, "error", err)
		return nil, err
	}

	t.log.Debug("Received response",
		"method", req.Method,
		"status", resp.StatusCode,
		"requestID", requestID,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return resp, nil
}

func redactedURL(u *url.URL) string {
	if u.User == nil {
		return u.String()
	}
	return u.Redacted()
}
