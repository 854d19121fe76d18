package cmd

import (
	"fmt"

	"github.com/jmcampanini/you-cli/internal/config"
	"github.com/jmcampanini/you-cli/internal/llm"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Talk to an LLM through OpenRouter",
	Long: `Talk to an LLM through OpenRouter.

Requires OPEN_ROUTER_TOKEN.`,
}

func init() {
	rootCmd.AddCommand(llmCmd)
}

// llmDeps holds injectable dependencies for testing.
type llmDeps struct {
	llm llm.LLM
}

// llmContext holds the resolved dependencies for llm commands.
type llmContext struct {
	cfg    config.Config
	client llm.LLM
}

// initLLMContext initializes the context from deps (for testing) or from environment.
func initLLMContext(deps *llmDeps, cfg *config.Config, model string) (*llmContext, error) {
	if deps != nil {
		loadedCfg := config.DefaultConfig()
		if cfg != nil {
			loadedCfg = *cfg
		}
		return &llmContext{
			cfg:    loadedCfg,
			client: deps.llm,
		}, nil
	}

	return initLLMContextFromEnv(model)
}

// initLLMContextFromEnv loads config and creates the client from the environment.
func initLLMContextFromEnv(model string) (*llmContext, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	client, err := newLLMClient(cfg, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &llmContext{
		cfg:    cfg,
		client: client,
	}, nil
}
