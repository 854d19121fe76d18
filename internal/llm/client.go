// Package llm is a client for OpenRouter-compatible chat completion APIs.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/jmcampanini/you-cli/internal/apierr"
)

// Defaults for Config.
const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "anthropic/claude-3.5-sonnet"
	DefaultTimeout = 120 * time.Second
)

// LLM is the subset of the completion API used by commands and the TUI.
type LLM interface {

	// ChatCompletion sends messages and returns the full response.
	ChatCompletion(ctx context.Context, messages []Message, opts *CompletionOptions) (*ChatCompletionResponse, error)

	// Complete sends a single user prompt and returns the answer text.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithSystem sends a system and a user message and returns the answer text.
	CompleteWithSystem(ctx context.Context, system, prompt string) (string, error)

	// Model returns the model requests are sent to.
	Model() string
}

// Config configures a Client.
type Config struct {
	APIKey  string
	AppName string // sent as X-Title when set
	BaseURL string
	Model   string
	SiteURL string // sent as HTTP-Referer when set

	// HTTPClient is used for all requests. When nil, a client with
	// DefaultTimeout is created.
	HTTPClient *http.Client
}

// Client talks to the completion API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *clog.Logger
}

var _ LLM = &Client{}

// New creates a Client. The API key must be set.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, apierr.Config("LLM API key is not set")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		log:        clog.Default().WithPrefix("llm"),
	}, nil
}

// Model returns the configured model.
func (c *Client) Model() string {
	return c.cfg.Model
}

// ChatCompletion sends messages to the model. opts may be nil.
func (c *Client) ChatCompletion(ctx context.Context, messages []Message, opts *CompletionOptions) (*ChatCompletionResponse, error) {
	if len(messages) == 0 {
		return nil, apierr.InvalidRequest("messages cannot be empty")
	}

	body := ChatCompletionRequest{Model: c.cfg.Model, Messages: messages}
	if opts != nil {
		body.CompletionOptions = *opts
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apierr.InvalidRequest("failed to encode request body: %v", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, apierr.InvalidRequest("failed to build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.SiteURL != "" {
		req.Header.Set("HTTP-Referer", c.cfg.SiteURL)
	}
	if c.cfg.AppName != "" {
		req.Header.Set("X-Title", c.cfg.AppName)
	}

	c.log.Debug("Sending chat completion", "model", c.cfg.Model, "messages", len(messages))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Chat completion request failed", "model", c.cfg.Model, "error", err)
		return nil, apierr.Transport(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := apierr.CheckResponse(resp); err != nil {
		c.log.Warn("Chat completion returned an error", "model", c.cfg.Model, "status", resp.StatusCode)
		return nil, err
	}

	var completion ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, apierr.Decode(err)
	}

	c.log.Info("Chat completion successful",
		"model", completion.Model,
		"promptTokens", completion.Usage.PromptTokens,
		"completionTokens", completion.Usage.CompletionTokens,
		"totalTokens", completion.Usage.TotalTokens,
	)
	return &completion, nil
}

// Complete sends prompt as a single user message and returns the answer.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.completeText(ctx, []Message{UserMessage(prompt)})
}

// CompleteWithSystem sends a system message followed by prompt and returns the answer.
func (c *Client) CompleteWithSystem(ctx context.Context, system, prompt string) (string, error) {
	return c.completeText(ctx, []Message{SystemMessage(system), UserMessage(prompt)})
}

func (c *Client) completeText(ctx context.Context, messages []Message) (string, error) {
	resp, err := c.ChatCompletion(ctx, messages, nil)
	if err != nil {
		return "", err
	}
	content, ok := resp.Content()
	if !ok {
		return "", apierr.InvalidRequest("no content in response")
	}
	return content, nil
}
