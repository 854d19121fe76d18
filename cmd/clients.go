package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/jmcampanini/you-cli/internal/config"
	"github.com/jmcampanini/you-cli/internal/httpclient"
	"github.com/jmcampanini/you-cli/internal/llm"
	"github.com/jmcampanini/you-cli/internal/tracker"
	"github.com/spf13/cobra"
)

// loadConfig merges the config files and the environment, then applies the
// configured log level unless --verbose was given.
func loadConfig() (config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get current directory: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get user home directory: %w", err)
	}

	loadResult, err := config.NewDefaultLoader().Load(config.ConfigPaths(cwd, homeDir))
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := loadResult.Config

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return config.Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	if !verboseFlag {
		// Validate already accepted the level.
		if level, err := clog.ParseLevel(cfg.Log.Level); err == nil {
			clog.SetLevel(level)
		}
	}
	clog.Debug("Loaded config", "sources", loadResult.SourcePaths)

	return cfg, nil
}

func newHTTPClient(cfg config.Config, timeout time.Duration) *http.Client {
	return httpclient.New(httpclient.Options{
		Timeout:   timeout,
		Proxy:     cfg.Proxy,
		UserAgent: "you/" + Version,
	})
}

func newTrackerClient(cfg config.Config) (*tracker.Client, error) {
	if err := cfg.Tracker.RequireToken(); err != nil {
		return nil, err
	}
	return tracker.New(tracker.Config{
		APIVersion: cfg.Tracker.APIVersion,
		BaseURL:    cfg.Tracker.BaseURL,
		HTTPClient: newHTTPClient(cfg, cfg.Tracker.Timeout),
		Language:   tracker.Language(cfg.Tracker.Language),
		OrgID:      cfg.Tracker.OrgID,
		Token:      cfg.Tracker.Token,
	})
}

// newLLMClient creates the LLM client. A non-empty model overrides llm.model.
func newLLMClient(cfg config.Config, model string) (*llm.Client, error) {
	if err := cfg.LLM.RequireToken(); err != nil {
		return nil, err
	}
	if model == "" {
		model = cfg.LLM.Model
	}
	return llm.New(llm.Config{
		APIKey:     cfg.LLM.Token,
		AppName:    cfg.LLM.AppName,
		BaseURL:    cfg.LLM.BaseURL,
		HTTPClient: newHTTPClient(cfg, cfg.LLM.Timeout),
		Model:      model,
		SiteURL:    cfg.LLM.SiteURL,
	})
}

// commandContext returns the command's context, or Background for commands
// that were not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
