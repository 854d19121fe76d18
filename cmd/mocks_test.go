package cmd

import (
	"context"

	"github.com/jmcampanini/you-cli/internal/config"
	"github.com/jmcampanini/you-cli/internal/llm"
	"github.com/jmcampanini/you-cli/internal/tracker"
)

// mockTracker implements tracker.Tracker for testing
type mockTracker struct {
	getIssueFn     func(ctx context.Context, issueID string, params *tracker.GetIssueParams) (*tracker.Issue, error)
	searchIssuesFn func(ctx context.Context, req tracker.SearchRequest, params *tracker.SearchParams) ([]tracker.Issue, error)
}

func (m *mockTracker) GetIssue(ctx context.Context, issueID string, params *tracker.GetIssueParams) (*tracker.Issue, error) {
	if m.getIssueFn != nil {
		return m.getIssueFn(ctx, issueID, params)
	}
	return &tracker.Issue{Key: issueID}, nil
}

func (m *mockTracker) SearchIssues(ctx context.Context, req tracker.SearchRequest, params *tracker.SearchParams) ([]tracker.Issue, error) {
	if m.searchIssuesFn != nil {
		return m.searchIssuesFn(ctx, req, params)
	}
	return nil, nil
}

// mockLLM implements llm.LLM for testing
type mockLLM struct {
	chatCompletionFn     func(ctx context.Context, messages []llm.Message, opts *llm.CompletionOptions) (*llm.ChatCompletionResponse, error)
	completeFn           func(ctx context.Context, prompt string) (string, error)
	completeWithSystemFn func(ctx context.Context, system, prompt string) (string, error)
}

func (m *mockLLM) ChatCompletion(ctx context.Context, messages []llm.Message, opts *llm.CompletionOptions) (*llm.ChatCompletionResponse, error) {
	if m.chatCompletionFn != nil {
		return m.chatCompletionFn(ctx, messages, opts)
	}
	return &llm.ChatCompletionResponse{}, nil
}

func (m *mockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, prompt)
	}
	return "", nil
}

func (m *mockLLM) CompleteWithSystem(ctx context.Context, system, prompt string) (string, error) {
	if m.completeWithSystemFn != nil {
		return m.completeWithSystemFn(ctx, system, prompt)
	}
	return "", nil
}

func (m *mockLLM) Model() string {
	return "test/model"
}

func defaultTestConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Tracker.WebURL = "https://tracker.example.com"
	return &cfg
}
