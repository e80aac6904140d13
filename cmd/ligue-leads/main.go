package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xavierca1/ligue-leads/internal/config"
)

var (
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ligue-leads",
	Short: "Lead management on top of the Creator data API",
	Long: `ligue-leads serves the lead, meeting and conversion workflows.

  serve   HTTP JSON API
  worker  conversion notices and reminder digests
  term    terminal front end`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		zcfg := zap.NewProductionConfig()
		if verbose || cfg.LogLevel == "debug" {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		// The terminal owns stdout while it runs.
		if cmd.Name() == "term" {
			zcfg.OutputPaths = []string{"ligue-leads.log"}
			zcfg.ErrorOutputPaths = []string{"ligue-leads.log"}
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(serveCmd, workerCmd, termCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
