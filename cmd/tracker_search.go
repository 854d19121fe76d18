package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/jmcampanini/you-cli/internal/config"
	"github.com/jmcampanini/you-cli/internal/tracker"
	"github.com/spf13/cobra"
)

type trackerSearchOptions struct {
	filter     map[string]string
	filterID   int64
	fzf        bool
	keys       []string
	order      string
	output     string
	page       int
	perPage    int
	perScroll  int
	query      string
	queue      string
	scrollID   string
	scrollTTL  time.Duration
	scrollType string
}

var trackerSearchOpts trackerSearchOptions

var trackerSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search tracker issues",
	Long: `Search tracker issues by query, queue, keys, field filter or saved filter.

Examples:
  you tracker search --query 'Assignee: me() Resolution: empty()'
  you tracker search --queue TEST --order -updated
  you tracker search --filter status=open --filter assignee=me
  you tracker search --keys TEST-1,TEST-2 -o json

With --fzf, outputs tab-separated format suitable for fzf integration:
  <key>\t<searchable>\t<display>`,
	Args: cobra.NoArgs,
	RunE: runTrackerSearch,
}

func init() {
	f := trackerSearchCmd.Flags()
	f.StringVar(&trackerSearchOpts.query, "query", "", "Query in the tracker query language")
	f.StringVar(&trackerSearchOpts.queue, "queue", "", "Queue key")
	f.StringSliceVar(&trackerSearchOpts.keys, "keys", nil, "Issue keys")
	f.StringToStringVar(&trackerSearchOpts.filter, "filter", nil, "Field filter as field=value (repeatable)")
	f.StringVar(&trackerSearchOpts.order, "order", "", "Sort order for --filter, e.g. -updated")
	f.Int64Var(&trackerSearchOpts.filterID, "filter-id", 0, "Saved filter id")
	f.IntVar(&trackerSearchOpts.perPage, "per-page", 0, "Issues per page")
	f.IntVar(&trackerSearchOpts.page, "page", 0, "Page number")
	f.StringVar(&trackerSearchOpts.scrollType, "scroll-type", "", "Scroll pagination: sorted or unsorted")
	f.IntVar(&trackerSearchOpts.perScroll, "per-scroll", 0, "Issues per scroll page")
	f.DurationVar(&trackerSearchOpts.scrollTTL, "scroll-ttl", 0, "Scroll context lifetime")
	f.StringVar(&trackerSearchOpts.scrollID, "scroll-id", "", "Scroll page id from a previous response")
	f.BoolVar(&trackerSearchOpts.fzf, "fzf", false, "Output in fzf-compatible format")
	f.StringVarP(&trackerSearchOpts.output, "output", "o", string(outputTable), "Output format: table, json, yaml")
	trackerCmd.AddCommand(trackerSearchCmd)
}

func runTrackerSearch(cmd *cobra.Command, args []string) error {
	return runTrackerSearchWithDeps(cmd, trackerSearchOpts, nil, nil)
}

func runTrackerSearchWithDeps(cmd *cobra.Command, opts trackerSearchOptions, deps *trackerDeps, cfg *config.Config) error {
	format, err := parseOutputFormat(opts.output, outputTable, outputJSON, outputYAML)
	if err != nil {
		return err
	}

	scrollType, err := tracker.ParseScrollType(opts.scrollType)
	if err != nil {
		return err
	}

	req := buildSearchRequest(opts)
	params := &tracker.SearchParams{
		Page:       opts.page,
		PerPage:    opts.perPage,
		PerScroll:  opts.perScroll,
		ScrollID:   opts.scrollID,
		ScrollTTL:  opts.scrollTTL,
		ScrollType: scrollType,
	}

	ctx, err := initTrackerContext(deps, cfg)
	if err != nil {
		return err
	}

	issues, err := ctx.client.SearchIssues(commandContext(cmd), req, params)
	if err != nil {
		return fmt.Errorf("failed to search issues: %w", err)
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.fzf:
		return outputIssuesFzf(cmd, issues)
	case format == outputJSON:
		return writeJSON(out, issues)
	case format == outputYAML:
		return writeYAML(out, issues)
	default:
		return outputIssuesTable(cmd, issues, ctx.now)
	}
}

// buildSearchRequest copies the set flags into a request body. A zero
// filter id means none was given.
func buildSearchRequest(opts trackerSearchOptions) tracker.SearchRequest {
	req := tracker.SearchRequest{
		Keys:  opts.keys,
		Order: opts.order,
		Query: opts.query,
		Queue: opts.queue,
	}
	if len(opts.filter) > 0 {
		req.Filter = make(map[string]any, len(opts.filter))
		for k, v := range opts.filter {
			req.Filter[k] = v
		}
	}
	if opts.filterID != 0 {
		id := opts.filterID
		req.FilterID = &id
	}
	return req
}

// outputIssuesTable renders a lipgloss table to stdout.
func outputIssuesTable(cmd *cobra.Command, issues []tracker.Issue, now time.Time) error {
	if len(issues) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No issues found.")
		return err
	}

	purple := lipgloss.Color("99")
	gray := lipgloss.Color("245")
	lightGray := lipgloss.Color("241")

	headerStyle := lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	oddRowStyle := cellStyle.Foreground(gray)
	evenRowStyle := cellStyle.Foreground(lightGray)

	rows := make([][]string, len(issues))
	for i, issue := range issues {
		updated := ""
		if t, ok := issue.UpdatedTime(); ok {
			updated = humanize.RelTime(t, now, "ago", "from now")
		}

		rows[i] = []string{
			issue.Key,
			truncateString(issue.Summary, 50),
			issue.StatusDisplay(),
			truncateString(issue.AssigneeDisplay(), 25),
			updated,
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers("Key", "Summary", "Status", "Assignee", "Updated").
		Rows(rows...)

	_, err := fmt.Fprintln(cmd.OutOrStdout(), t)
	return err
}

// outputIssuesFzf renders fzf-compatible TSV format.
// Format: <key>\t<searchable>\t<display>
func outputIssuesFzf(cmd *cobra.Command, issues []tracker.Issue) error {
	for _, issue := range issues {
		searchable := sanitizeFzfField(fmt.Sprintf("%s %s %s %s",
			issue.Key,
			issue.Summary,
			issue.StatusDisplay(),
			issue.AssigneeDisplay(),
		))

		display := fmt.Sprintf("%s %s", issue.Key, issue.Summary)
		if status := issue.StatusDisplay(); status != "" {
			display += " [" + status + "]"
		}
		display = sanitizeFzfField(display)

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", issue.Key, searchable, display)
		if err != nil {
			return err
		}
	}
	return nil
}
