package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

// Config represents the complete you configuration.
type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	Log     LogConfig     `toml:"log"`
	Plan    PlanConfig    `toml:"plan"`
	Tracker TrackerConfig `toml:"tracker"`
	TUI     TUIConfig     `toml:"tui"`

	// Proxy is set from the environment only.
	Proxy *url.URL `toml:"-"`
}

// Validate checks that all config values are valid.
// Returns an error describing the first invalid value found.
func (c Config) Validate() error {
	if c.Tracker.Timeout < 0 {
		return errors.New("tracker.timeout cannot be negative")
	}
	if err := validateBaseURL("tracker.base_url", c.Tracker.BaseURL); err != nil {
		return err
	}
	if c.Tracker.APIVersion == "" {
		return errors.New("tracker.api_version cannot be empty")
	}
	if c.Tracker.Language != "ru" && c.Tracker.Language != "en" {
		return fmt.Errorf("tracker.language must be \"ru\" or \"en\", got %q", c.Tracker.Language)
	}
	if c.Tracker.WebURL != "" {
		if err := validateBaseURL("tracker.web_url", c.Tracker.WebURL); err != nil {
			return err
		}
	}
	if c.LLM.Timeout < 0 {
		return errors.New("llm.timeout cannot be negative")
	}
	if err := validateBaseURL("llm.base_url", c.LLM.BaseURL); err != nil {
		return err
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.Plan.PerPage < 0 {
		return errors.New("plan.per_page cannot be negative")
	}
	if c.TUI.HistoryLimit < 0 {
		return errors.New("tui.history_limit cannot be negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level %q is not a valid level", c.Log.Level)
	}
	return nil
}

func validateBaseURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", key, raw)
	}
	return nil
}

// LLMConfig configures the completion service client.
type LLMConfig struct {
	AppName string        `toml:"app_name"` // sent as X-Title when set
	BaseURL string        `toml:"base_url"`
	Model   string        `toml:"model"`
	SiteURL string        `toml:"site_url"` // sent as HTTP-Referer when set
	Timeout time.Duration `toml:"timeout"`

	Token string `toml:"-"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// PlanConfig configures the day plan prompt.
type PlanConfig struct {
	PerPage      int    `toml:"per_page"`
	Query        string `toml:"query"` // tracker query language
	SystemPrompt string `toml:"system_prompt"`
}

// TrackerConfig configures the tracker client.
type TrackerConfig struct {
	APIVersion string        `toml:"api_version"`
	BaseURL    string        `toml:"base_url"`
	Language   string        `toml:"language"` // "ru" or "en"
	OrgID      string        `toml:"org_id"`
	Timeout    time.Duration `toml:"timeout"`
	WebURL     string        `toml:"web_url"` // used to build links to issues

	Token string `toml:"-"`
}

// TUIConfig configures the terminal UI.
type TUIConfig struct {
	HistoryLimit int `toml:"history_limit"` // output entries kept per screen, 0 keeps all
}
