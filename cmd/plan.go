package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmcampanini/you-cli/internal/config"
	"github.com/jmcampanini/you-cli/internal/llm"
	"github.com/jmcampanini/you-cli/internal/plan"
	"github.com/jmcampanini/you-cli/internal/tracker"
	"github.com/spf13/cobra"
)

type planOptions struct {
	model      string
	query      string
	raw        bool
	showPrompt bool
}

var planOpts planOptions

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan your day from your open issues",
	Long: `Fetch your open tracker issues and ask the LLM to turn them into a plan
for today.

The issue query and system prompt come from the [plan] config section.
Requires TRACKER_TOKEN and OPEN_ROUTER_TOKEN.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planOpts.model, "model", "m", "", "Model to use (default llm.model from config)")
	planCmd.Flags().StringVar(&planOpts.query, "query", "", "Issue query (default plan.query from config)")
	planCmd.Flags().BoolVar(&planOpts.raw, "raw", false, "Print the plan without markdown rendering")
	planCmd.Flags().BoolVar(&planOpts.showPrompt, "show-prompt", false, "Print the prompt sent to the LLM to stderr")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	return runPlanWithDeps(cmd, planOpts, nil, nil)
}

// planDeps holds injectable dependencies for testing.
type planDeps struct {
	llm     llm.LLM
	now     func() time.Time
	tracker tracker.Tracker
}

// planContext holds the resolved dependencies for the plan command.
type planContext struct {
	cfg           config.Config
	llmClient     llm.LLM
	now           func() time.Time
	trackerClient tracker.Tracker
}

func runPlanWithDeps(cmd *cobra.Command, opts planOptions, deps *planDeps, cfg *config.Config) error {
	ctx, err := initPlanContext(deps, cfg, opts.model)
	if err != nil {
		return err
	}

	query := ctx.cfg.Plan.Query
	if opts.query != "" {
		query = opts.query
	}

	planner := plan.New(ctx.trackerClient, ctx.llmClient, plan.Options{
		Now:          ctx.now,
		PerPage:      ctx.cfg.Plan.PerPage,
		Query:        query,
		SystemPrompt: ctx.cfg.Plan.SystemPrompt,
	})

	result, err := planner.Plan(commandContext(cmd))
	if errors.Is(err, plan.ErrNoIssues) {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "No open issues to plan. Enjoy your day!")
		return err
	}
	if err != nil {
		return err
	}

	if opts.showPrompt {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), result.Prompt)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Planned %d issues with %s\n", len(result.Issues), result.Model)

	out := result.Plan
	if !opts.raw {
		out = renderMarkdown(out, markdownWidth)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
	return err
}

// initPlanContext initializes the context from deps (for testing) or from environment.
func initPlanContext(deps *planDeps, cfg *config.Config, model string) (*planContext, error) {
	if deps != nil {
		loadedCfg := config.DefaultConfig()
		if cfg != nil {
			loadedCfg = *cfg
		}
		return &planContext{
			cfg:           loadedCfg,
			llmClient:     deps.llm,
			now:           deps.now,
			trackerClient: deps.tracker,
		}, nil
	}

	return initPlanContextFromEnv(model)
}

// initPlanContextFromEnv loads config and creates both clients from the environment.
func initPlanContextFromEnv(model string) (*planContext, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	trackerClient, err := newTrackerClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracker client: %w", err)
	}

	llmClient, err := newLLMClient(cfg, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &planContext{
		cfg:           cfg,
		llmClient:     llmClient,
		trackerClient: trackerClient,
	}, nil
}
