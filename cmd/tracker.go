package cmd

import (
	"fmt"
	"time"

	"github.com/jmcampanini/you-cli/internal/config"
	"github.com/jmcampanini/you-cli/internal/tracker"
	"github.com/spf13/cobra"
)

var trackerCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Look up and search tracker issues",
	Long: `Look up and search tracker issues.

Requires TRACKER_TOKEN. Set TRACKER_ORG_ID when your organization needs it.`,
}

func init() {
	rootCmd.AddCommand(trackerCmd)
}

// trackerDeps holds injectable dependencies for testing.
type trackerDeps struct {
	now     func() time.Time
	tracker tracker.Tracker
}

// trackerContext holds the resolved dependencies for tracker commands.
type trackerContext struct {
	cfg    config.Config
	client tracker.Tracker
	now    time.Time
}

// initTrackerContext initializes the context from deps (for testing) or from environment.
func initTrackerContext(deps *trackerDeps, cfg *config.Config) (*trackerContext, error) {
	if deps != nil {
		loadedCfg := config.DefaultConfig()
		if cfg != nil {
			loadedCfg = *cfg
		}
		now := time.Now
		if deps.now != nil {
			now = deps.now
		}
		return &trackerContext{
			cfg:    loadedCfg,
			client: deps.tracker,
			now:    now(),
		}, nil
	}

	return initTrackerContextFromEnv()
}

// initTrackerContextFromEnv loads config and creates the client from the environment.
func initTrackerContextFromEnv() (*trackerContext, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	client, err := newTrackerClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracker client: %w", err)
	}

	return &trackerContext{
		cfg:    cfg,
		client: client,
		now:    time.Now(),
	}, nil
}

func parseExpandFields(names []string) ([]tracker.ExpandField, error) {
	fields := make([]tracker.ExpandField, 0, len(names))
	for _, name := range names {
		f, err := tracker.ParseExpandField(name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}
