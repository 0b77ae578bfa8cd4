package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	cfgpkg "github.com/KaramelBytes/orderlens-cli/internal/config"
	"github.com/KaramelBytes/orderlens-cli/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration and logger, set before any subcommand runs
	cfg    *cfgpkg.Global
	appLog = logger.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "orderlens",
	Short: "orderlens: segment, state and discount insights from order CSVs",
	Long: `orderlens reads e-commerce order exports (CSV, TSV or XLSX), computes per-category
customer segment probabilities and top states, recommends a segment and state per category,
and finds the revenue-maximizing discount tier. It can also generate synthetic order data.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute is the entry point called by main.main()
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

// run executes the command tree and logs a failure before it is reported.
func run(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		appLog.WithError(err).WithField("command", rootCmd.Name()).Debug("command failed")
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.orderlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	appLog = logger.New(logger.Options{Level: level, Format: cfg.LogFormat, Out: cmd.ErrOrStderr()})
	appLog.Component("cli").WithField("command", cmd.CommandPath()).Debug("config loaded")
	return nil
}
