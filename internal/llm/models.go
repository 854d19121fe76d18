package llm

// Role is the author of a chat message.
type Role string

const (
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
)

// Message is a single chat message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage returns a message with RoleSystem.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage returns a message with RoleUser.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage returns a message with RoleAssistant.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// CompletionOptions are optional sampling parameters. Unset fields are left
// out of the request entirely so the provider applies its own defaults.
type CompletionOptions struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxTokens        *int     `json:"max_tokens,omitempty"`
	TopP             *float64 `json:"top_p,omitempty"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty"`
	Stop             []string `json:"stop,omitempty"`
}

// WithTemperature returns a copy of o with the sampling temperature set.
func (o CompletionOptions) WithTemperature(v float64) CompletionOptions {
	o.Temperature = &v
	return o
}

// WithMaxTokens returns a copy of o that limits the answer to v tokens.
func (o CompletionOptions) WithMaxTokens(v int) CompletionOptions {
	o.MaxTokens = &v
	return o
}

// WithTopP returns a copy of o with nucleus sampling set to v.
func (o CompletionOptions) WithTopP(v float64) CompletionOptions {
	o.TopP = &v
	return o
}

// WithFrequencyPenalty returns a copy of o with the frequency penalty set.
func (o CompletionOptions) WithFrequencyPenalty(v float64) CompletionOptions {
	o.FrequencyPenalty = &v
	return o
}

// WithPresencePenalty returns a copy of o with the presence penalty set.
func (o CompletionOptions) WithPresencePenalty(v float64) CompletionOptions {
	o.PresencePenalty = &v
	return o
}

// WithStop returns a copy of o with its own copy of the stop sequences.
func (o CompletionOptions) WithStop(stop ...string) CompletionOptions {
	o.Stop = append([]string(nil), stop...)
	return o
}

// ChatCompletionRequest is the body of POST /chat/completions. Options are
// flattened into the top-level object.
type ChatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	CompletionOptions
}

// Choice is one generated alternative.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason *string `json:"finish_reason,omitempty"`
}

// Usage reports token accounting for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatCompletionResponse is the decoded completion result.
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
	Created int64    `json:"created"`
}

// Content returns the text of the first choice. The second result is false
// when there are no choices.
func (r ChatCompletionResponse) Content() (string, bool) {
	if len(r.Choices) == 0 {
		return "", false
	}
	return r.Choices[0].Message.Content, true
}
