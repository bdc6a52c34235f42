package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kamusis/skillscope/internal/config"
	"github.com/kamusis/skillscope/internal/logger"
)

var (
	flagConfigPath string
	flagLogLevel   string
	flagLogFormat  string

	// appConfig is loaded once per invocation by the root pre-run hook.
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:          "skillscope",
	Short:        "Pick the right skill documents for a task by keyword",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `skillscope discovers skill, command and workflow documents in a corpus
directory, scores them against a task description by keyword and category,
and prints or injects the best matches.

Configuration lives at ~/.skillscope/skillscope.yaml.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(flagConfigPath)
		if err != nil {
			return fmt.Errorf("cannot load config: %w", err)
		}
		level, format := cfg.LogLevel, cfg.LogFormat
		if cmd.Flags().Changed("log-level") {
			level = flagLogLevel
		}
		if cmd.Flags().Changed("log-format") {
			format = flagLogFormat
		}
		if err := logger.Configure(level, format); err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		appConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Config file (default ~/.skillscope/skillscope.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text or json)")
}

// Execute is called by main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// validConfig returns the loaded config, printing every invalid field.
func validConfig() (*config.Config, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("config not loaded")
	}
	errs := appConfig.Validate()
	if len(errs) == 0 {
		return appConfig, nil
	}
	for _, e := range errs {
		printErr(e.Field, e.Message)
	}
	return nil, fmt.Errorf("invalid config (%d problem(s))\nRun 'skillscope init' or fix the config file.", len(errs))
}
