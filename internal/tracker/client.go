package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/jmcampanini/you-cli/internal/apierr"
)

// Defaults for Config.
const (
	DefaultAPIVersion = "v3"
	DefaultBaseURL    = "https://st-api.yandex-team.ru"
	DefaultTimeout    = 30 * time.Second
)

// Language selects the Accept-Language of responses.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageRussian Language = "ru"
)

// Config configures a Client.
type Config struct {
	APIVersion string
	BaseURL    string
	Language   Language
	OrgID      string // sent as X-Org-ID when set
	Token      string // OAuth token

	// HTTPClient is used for all requests. When nil, a client with
	// DefaultTimeout is created.
	HTTPClient *http.Client
}

// DefaultConfig returns a Config for the public endpoint with the given token.
func DefaultConfig(token string) Config {
	return Config{
		APIVersion: DefaultAPIVersion,
		BaseURL:    DefaultBaseURL,
		Language:   LanguageRussian,
		Token:      token,
	}
}

// PaginationParams selects a page of a list endpoint. Zero fields are omitted.
type PaginationParams struct {
	Page    int
	PerPage int
}

// DefaultPagination returns the first page of 50 items.
func DefaultPagination() PaginationParams {
	return PaginationParams{Page: 1, PerPage: 50}
}

func (p PaginationParams) encode() string {
	// perPage before page, matching the order the API documents.
	var parts []string
	if p.PerPage > 0 {
		parts = append(parts, "perPage="+strconv.Itoa(p.PerPage))
	}
	if p.Page > 0 {
		parts = append(parts, "page="+strconv.Itoa(p.Page))
	}
	return strings.Join(parts, "&")
}

// PaginationMeta is read from the X-Total-Pages and X-Total-Count headers.
type PaginationMeta struct {
	TotalCount *int
	TotalPages *int
}

func paginationFromHeader(h http.Header) *PaginationMeta {
	pages := headerInt(h, "X-Total-Pages")
	count := headerInt(h, "X-Total-Count")
	if pages == nil && count == nil {
		return nil
	}
	return &PaginationMeta{TotalCount: count, TotalPages: pages}
}

func headerInt(h http.Header, key string) *int {
	v := strings.TrimSpace(h.Get(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// Client talks to the tracker API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *clog.Logger
}

var _ Tracker = &Client{}

// New creates a Client. The token must be set.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, apierr.Config("tracker OAuth token is not set")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Language == "" {
		cfg.Language = LanguageRussian
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		log:        clog.Default().WithPrefix("tracker"),
	}, nil
}

// URL returns the absolute URL of an API resource. A leading slash on
// resourcePath is ignored.
func (c *Client) URL(resourcePath string) string {
	return fmt.Sprintf("%s/%s/%s",
		strings.TrimRight(c.cfg.BaseURL, "/"),
		c.cfg.APIVersion,
		strings.TrimLeft(resourcePath, "/"),
	)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, resourcePath string, query url.Values) (json.RawMessage, *PaginationMeta, error) {
	return c.do(ctx, http.MethodGet, resourcePath, nil, nil, query)
}

// GetPaginated performs a GET request for one page of a list.
func (c *Client) GetPaginated(ctx context.Context, resourcePath string, page PaginationParams, query url.Values) (json.RawMessage, *PaginationMeta, error) {
	return c.do(ctx, http.MethodGet, resourcePath, nil, &page, query)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, resourcePath string, body any, query url.Values) (json.RawMessage, *PaginationMeta, error) {
	return c.do(ctx, http.MethodPost, resourcePath, body, nil, query)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, resourcePath string, body any, query url.Values) (json.RawMessage, *PaginationMeta, error) {
	return c.do(ctx, http.MethodPatch, resourcePath, body, nil, query)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, resourcePath string, query url.Values) (json.RawMessage, *PaginationMeta, error) {
	return c.do(ctx, http.MethodDelete, resourcePath, nil, nil, query)
}

// Do performs a request and returns the raw JSON body of a 2xx response along
// with pagination metadata, if the response carried any. A nil body is sent
// without Content-Type. An empty response body yields a nil RawMessage.
func (c *Client) Do(ctx context.Context, method, resourcePath string, body any, query url.Values) (json.RawMessage, *PaginationMeta, error) {
	return c.do(ctx, method, resourcePath, body, nil, query)
}

func (c *Client) do(ctx context.Context, method, resourcePath string, body any, page *PaginationParams, query url.Values) (json.RawMessage, *PaginationMeta, error) {
	endpoint := c.URL(resourcePath)

	var rawQuery []string
	if page != nil {
		if encoded := page.encode(); encoded != "" {
			rawQuery = append(rawQuery, encoded)
		}
	}
	if len(query) > 0 {
		rawQuery = append(rawQuery, query.Encode())
	}
	if len(rawQuery) > 0 {
		endpoint += "?" + strings.Join(rawQuery, "&")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, apierr.InvalidRequest("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, nil, apierr.InvalidRequest("failed to build request: %v", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", string(c.cfg.Language))
	if c.cfg.OrgID != "" {
		req.Header.Set("X-Org-ID", c.cfg.OrgID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("Executing tracker request", "method", method, "path", resourcePath)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Tracker request failed", "method", method, "path", resourcePath, "error", err)
		return nil, nil, apierr.Transport(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := apierr.CheckResponse(resp); err != nil {
		c.log.Warn("Tracker returned an error", "method", method, "path", resourcePath, "status", resp.StatusCode)
		return nil, nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, apierr.Transport(err)
	}
	meta := paginationFromHeader(resp.Header)

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, meta, nil
	}
	if !json.Valid(data) {
		return nil, nil, apierr.Decode(fmt.Errorf("response from %s %s is not valid JSON", method, resourcePath))
	}
	return json.RawMessage(data), meta, nil
}

// decodeInto unmarshals raw into v, wrapping failures as decode errors.
func decodeInto(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return apierr.Decode(fmt.Errorf("empty response body"))
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return apierr.Decode(err)
	}
	return nil
}
