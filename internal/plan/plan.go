// Package plan turns the open tracker issues into a day plan written by the LLM.
package plan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/jmcampanini/you-cli/internal/llm"
	"github.com/jmcampanini/you-cli/internal/tracker"
)

// ErrNoIssues is returned when the query matches nothing to plan.
var ErrNoIssues = errors.New("no open issues matched the plan query")

// Options configure a Planner.
type Options struct {
	Now          func() time.Time // defaults to time.Now
	PerPage      int
	Query        string
	SystemPrompt string
}

// Result is a generated plan.
type Result struct {
	Issues []tracker.Issue
	Model  string
	Plan   string
	Prompt string
}

// Planner builds day plans.
type Planner struct {
	llm     llm.LLM
	log     *clog.Logger
	now     func() time.Time
	opts    Options
	tracker tracker.Tracker
}

// New creates a Planner.
func New(t tracker.Tracker, l llm.LLM, opts Options) *Planner {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Planner{
		llm:     l,
		log:     clog.Default().WithPrefix("plan"),
		now:     now,
		opts:    opts,
		tracker: t,
	}
}

// Plan fetches issues matching the configured query and asks the model to
// order them into a plan for today.
func (p *Planner) Plan(ctx context.Context) (Result, error) {
	if strings.TrimSpace(p.opts.Query) == "" {
		return Result{}, errors.New("plan query cannot be empty")
	}

	issues, err := p.tracker.SearchIssues(ctx,
		tracker.SearchRequest{Query: p.opts.Query},
		&tracker.SearchParams{PerPage: p.opts.PerPage},
	)
	if err != nil {
		return Result{}, fmt.Errorf("failed to search issues: %w", err)
	}
	if len(issues) == 0 {
		return Result{}, ErrNoIssues
	}
	p.log.Debug("Planning issues", "count", len(issues), "model", p.llm.Model())

	prompt, err := BuildPrompt(p.now(), issues)
	if err != nil {
		return Result{}, err
	}

	answer, err := p.llm.CompleteWithSystem(ctx, p.opts.SystemPrompt, prompt)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate plan: %w", err)
	}

	return Result{
		Issues: issues,
		Model:  p.llm.Model(),
		Plan:   answer,
		Prompt: prompt,
	}, nil
}

var promptTemplate = template.Must(template.New("plan").Parse(
	`Today is {{ .Date }}. These are my open issues ({{ len .Issues }}):
{{ range .Issues }}
- {{ .Key }}: {{ .Summary }}
  status: {{ or .StatusDisplay "unknown" }}{{ with .PriorityDisplay }}; priority: {{ . }}{{ end }}{{ with .UpdatedAt }}; updated: {{ . }}{{ end }}
{{- end }}

Plan my day.
`))

// BuildPrompt renders the user prompt for a plan.
func BuildPrompt(now time.Time, issues []tracker.Issue) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Date   string
		Issues []tracker.Issue
	}{
		Date:   now.Format("Monday, 2 January 2006"),
		Issues: issues,
	}
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render plan prompt: %w", err)
	}
	return buf.String(), nil
}
