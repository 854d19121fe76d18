package cmd

import (
	"context"
	"os"
	"os/signal"

	clog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "n/a"

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "you",
	Short: "Personal productivity CLI for the issue tracker and LLMs",
	Long: `You looks up and searches tracker issues, asks an LLM questions,
and turns your open issues into a plan for the day.

Credentials are read from the environment:
  TRACKER_TOKEN       tracker OAuth token
  TRACKER_ORG_ID      tracker organization id (optional)
  OPEN_ROUTER_TOKEN   OpenRouter API key
  YOU_PROXY           HTTP proxy for both services (optional)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			clog.SetLevel(clog.DebugLevel)
		}
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command. An interrupt cancels the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
