package config

import "time"

// DefaultPlanSystemPrompt instructs the model how to shape a day plan.
const DefaultPlanSystemPrompt = `You are a pragmatic assistant that plans a software engineer's working day.
Given a list of open tracker issues, produce a short prioritized plan in Markdown:
a numbered list of what to do first, with one line of reasoning per item,
followed by anything that can safely wait. Refer to issues by their key.`

// DefaultConfig returns sensible defaults for all configuration.
func DefaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			BaseURL: "https://openrouter.ai/api/v1",
			Model:   "anthropic/claude-3.5-sonnet",
			Timeout: 120 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Plan: PlanConfig{
			PerPage:      50,
			Query:        `Assignee: me() Resolution: empty() "Sort by": Updated DESC`,
			SystemPrompt: DefaultPlanSystemPrompt,
		},
		Tracker: TrackerConfig{
			APIVersion: "v3",
			BaseURL:    "https://st-api.yandex-team.ru",
			Language:   "ru",
			Timeout:    30 * time.Second,
			WebURL:     "https://st.yandex-team.ru",
		},
		TUI: TUIConfig{
			HistoryLimit: 200,
		},
	}
}
