package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Environment variables read at startup.
const (
	EnvLLMToken     = "OPEN_ROUTER_TOKEN"
	EnvProxy        = "YOU_PROXY"
	EnvTrackerOrgID = "TRACKER_ORG_ID"
	EnvTrackerToken = "TRACKER_TOKEN"
)

var (
	// ErrMissingCredential is returned when a required token is not set.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidProxy is returned when a proxy value cannot be used.
	ErrInvalidProxy = errors.New("invalid proxy")
)

// LookupEnv matches the signature of os.LookupEnv.
type LookupEnv func(key string) (string, bool)

// ApplyEnv copies credentials, the org id and the proxy from the environment
// into c. Blank values are treated as unset.
func (c *Config) ApplyEnv(lookup LookupEnv) error {
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}

	if v := get(EnvTrackerToken); v != "" {
		c.Tracker.Token = v
	}
	if v := get(EnvTrackerOrgID); v != "" {
		c.Tracker.OrgID = v
	}
	if v := get(EnvLLMToken); v != "" {
		c.LLM.Token = v
	}

	proxy, err := ParseProxy(get(EnvProxy))
	if err != nil {
		return fmt.Errorf("%s: %w", EnvProxy, err)
	}
	if proxy != nil {
		c.Proxy = proxy
	}
	return nil
}

// RequireToken returns ErrMissingCredential naming EnvTrackerToken when the
// tracker token is unset.
func (c TrackerConfig) RequireToken() error {
	if c.Token == "" {
		return fmt.Errorf("%w: %s environment variable not set", ErrMissingCredential, EnvTrackerToken)
	}
	return nil
}

// RequireToken returns ErrMissingCredential naming EnvLLMToken when the LLM
// token is unset.
func (c LLMConfig) RequireToken() error {
	if c.Token == "" {
		return fmt.Errorf("%w: %s environment variable not set", ErrMissingCredential, EnvLLMToken)
	}
	return nil
}

// ParseProxy parses a proxy setting. Blank input means no proxy and returns
// nil. Input without a scheme is treated as http.
func ParseProxy(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProxy, err)
	}
	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidProxy, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", ErrInvalidProxy, raw)
	}
	return u, nil
}
