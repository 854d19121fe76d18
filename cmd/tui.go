package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/jmcampanini/you-cli/internal/llm"
	"github.com/jmcampanini/you-cli/internal/tracker"
	"github.com/jmcampanini/you-cli/internal/tui"
	"github.com/spf13/cobra"
)

var tuiLogFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the terminal UI",
	Long: `Launch the interactive terminal UI.

The menu opens the Tracker screen (1), which looks up issues by key, and the
LLM screen (2), which asks the LLM a question. Esc returns to the menu,
q quits from the menu and Ctrl+C quits anywhere.

Logs are discarded while the UI runs unless --log-file is given.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "Append logs to this file while the UI runs")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	restore, err := redirectLogs(tuiLogFile)
	if err != nil {
		return err
	}
	defer restore()

	// Missing credentials are shown on the affected screen instead of
	// preventing the UI from starting.
	trackerClient, trackerErr := newTrackerClient(cfg)
	llmClient, llmErr := newLLMClient(cfg, "")

	screens := buildTUIScreens(
		trackerScreenClient(trackerClient, trackerErr), trackerErr,
		llmScreenClient(llmClient, llmErr), llmErr,
		cfg.Tracker.WebURL, time.Now,
	)
	return tui.Run(commandContext(cmd), cfg.TUI.HistoryLimit, screens...)
}

// redirectLogs points the default logger at path, or discards logs when
// path is empty. The returned func restores stderr.
func redirectLogs(path string) (func(), error) {
	if path == "" {
		clog.SetOutput(io.Discard)
		return func() { clog.SetOutput(os.Stderr) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	clog.SetOutput(f)
	return func() {
		clog.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}

func trackerScreenClient(c *tracker.Client, err error) tracker.Tracker {
	if err != nil {
		return nil
	}
	return c
}

func llmScreenClient(c *llm.Client, err error) llm.LLM {
	if err != nil {
		return nil
	}
	return c
}

// buildTUIScreens returns the Tracker and LLM screens. A non-nil trackerErr
// or llmErr is returned by every submission on that screen.
func buildTUIScreens(t tracker.Tracker, trackerErr error, l llm.LLM, llmErr error, webURL string, now func() time.Time) []tui.Screen {
	return []tui.Screen{
		{
			Title:       "Tracker",
			Description: "look up an issue by key",
			Prompt:      "Issue key",
			Placeholder: "QUEUE-123",
			Command:     "tracker issue",
			ErrorPrefix: "Tracker error",
			Execute: func(ctx context.Context, input string) (string, error) {
				if trackerErr != nil {
					return "", trackerErr
				}
				issue, err := t.GetIssue(ctx, input, nil)
				if err != nil {
					return "", err
				}
				return strings.TrimRight(tracker.FormatIssue(*issue, webURL, now()), "\n"), nil
			},
		},
		{
			Title:       "LLM",
			Description: "ask the LLM a question",
			Prompt:      "Prompt",
			Placeholder: "Ask anything",
			Command:     "llm ask",
			ErrorPrefix: "LLM error",
			Execute: func(ctx context.Context, input string) (string, error) {
				if llmErr != nil {
					return "", llmErr
				}
				return l.Complete(ctx, input)
			},
		},
	}
}
