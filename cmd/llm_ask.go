package cmd

import (
	"fmt"
	"strings"

	"github.com/jmcampanini/you-cli/internal/apierr"
	"github.com/jmcampanini/you-cli/internal/config"
	"github.com/jmcampanini/you-cli/internal/llm"
	"github.com/spf13/cobra"
)

const markdownWidth = 100

type llmAskOptions struct {
	maxTokens   *int
	model       string
	raw         bool
	system      string
	temperature *float64
	topP        *float64
}

// completionOptions returns the sampling options that were set, or nil.
func (o llmAskOptions) completionOptions() *llm.CompletionOptions {
	if o.temperature == nil && o.maxTokens == nil && o.topP == nil {
		return nil
	}
	return &llm.CompletionOptions{
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
		TopP:        o.topP,
	}
}

var (
	llmAskModel       string
	llmAskMaxTokens   int
	llmAskRaw         bool
	llmAskSystem      string
	llmAskTemperature float64
	llmAskTopP        float64
)

var llmAskCmd = &cobra.Command{
	Use:   "ask <prompt>",
	Short: "Ask the LLM a question",
	Long: `Ask the LLM a single question and print the answer as rendered markdown.

All arguments are joined into one prompt. Sampling flags are only sent when
given, so the provider defaults apply otherwise.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLLMAsk,
}

func init() {
	f := llmAskCmd.Flags()
	f.StringVarP(&llmAskModel, "model", "m", "", "Model to use (default llm.model from config)")
	f.Float64VarP(&llmAskTemperature, "temperature", "t", 0, "Sampling temperature")
	f.IntVar(&llmAskMaxTokens, "max-tokens", 0, "Maximum tokens in the answer")
	f.Float64Var(&llmAskTopP, "top-p", 0, "Nucleus sampling probability")
	f.StringVar(&llmAskSystem, "system", "", "System prompt")
	f.BoolVar(&llmAskRaw, "raw", false, "Print the answer without markdown rendering")
	llmCmd.AddCommand(llmAskCmd)
}

func runLLMAsk(cmd *cobra.Command, args []string) error {
	opts := llmAskOptions{
		model:  llmAskModel,
		raw:    llmAskRaw,
		system: llmAskSystem,
	}
	if cmd.Flags().Changed("temperature") {
		opts.temperature = &llmAskTemperature
	}
	if cmd.Flags().Changed("max-tokens") {
		opts.maxTokens = &llmAskMaxTokens
	}
	if cmd.Flags().Changed("top-p") {
		opts.topP = &llmAskTopP
	}
	return runLLMAskWithDeps(cmd, args, opts, nil, nil)
}

func runLLMAskWithDeps(cmd *cobra.Command, args []string, opts llmAskOptions, deps *llmDeps, cfg *config.Config) error {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty")
	}

	ctx, err := initLLMContext(deps, cfg, opts.model)
	if err != nil {
		return err
	}

	answer, err := ask(cmd, ctx.client, prompt, opts)
	if err != nil {
		return fmt.Errorf("failed to get answer: %w", err)
	}

	if !opts.raw {
		answer = renderMarkdown(answer, markdownWidth)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(answer, "\n"))
	return err
}

func ask(cmd *cobra.Command, client llm.LLM, prompt string, opts llmAskOptions) (string, error) {
	ctx := commandContext(cmd)

	completion := opts.completionOptions()
	if completion == nil {
		if opts.system != "" {
			return client.CompleteWithSystem(ctx, opts.system, prompt)
		}
		return client.Complete(ctx, prompt)
	}

	var messages []llm.Message
	if opts.system != "" {
		messages = append(messages, llm.SystemMessage(opts.system))
	}
	messages = append(messages, llm.UserMessage(prompt))

	resp, err := client.ChatCompletion(ctx, messages, completion)
	if err != nil {
		return "", err
	}
	content, ok := resp.Content()
	if !ok {
		return "", apierr.InvalidRequest("no content in response")
	}
	return content, nil
}
