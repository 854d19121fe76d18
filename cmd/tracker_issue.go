package cmd

import (
	"fmt"

	"github.com/jmcampanini/you-cli/internal/config"
	"github.com/jmcampanini/you-cli/internal/tracker"
	"github.com/spf13/cobra"
)

type trackerIssueOptions struct {
	expand []string
	output string
}

var trackerIssueOpts trackerIssueOptions

var trackerIssueCmd = &cobra.Command{
	Use:   "issue <id>",
	Short: "Show a tracker issue",
	Long: `Show a single tracker issue by key (QUEUE-123) or id.

The text format prints the key, title, status, assignee, priority, last
update, tags, a link and the description. Use -o json or -o yaml for the
full issue.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrackerIssue,
}

func init() {
	trackerIssueCmd.Flags().StringSliceVar(&trackerIssueOpts.expand, "expand", nil, "Extra sections to include: attachments, comments, transitions")
	trackerIssueCmd.Flags().StringVarP(&trackerIssueOpts.output, "output", "o", string(outputText), "Output format: text, json, yaml")
	trackerCmd.AddCommand(trackerIssueCmd)
}

func runTrackerIssue(cmd *cobra.Command, args []string) error {
	return runTrackerIssueWithDeps(cmd, args, trackerIssueOpts, nil, nil)
}

func runTrackerIssueWithDeps(cmd *cobra.Command, args []string, opts trackerIssueOptions, deps *trackerDeps, cfg *config.Config) error {
	format, err := parseOutputFormat(opts.output, outputText, outputJSON, outputYAML)
	if err != nil {
		return err
	}

	expand, err := parseExpandFields(opts.expand)
	if err != nil {
		return err
	}

	ctx, err := initTrackerContext(deps, cfg)
	if err != nil {
		return err
	}

	issueID := args[0]
	issue, err := ctx.client.GetIssue(commandContext(cmd), issueID, &tracker.GetIssueParams{Expand: expand})
	if err != nil {
		return fmt.Errorf("failed to get issue %s: %w", issueID, err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case outputJSON:
		return writeJSON(out, issue)
	case outputYAML:
		return writeYAML(out, issue)
	default:
		_, err = fmt.Fprint(out, tracker.FormatIssue(*issue, ctx.cfg.Tracker.WebURL, ctx.now))
		return err
	}
}
