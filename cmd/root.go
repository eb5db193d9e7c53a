package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/cropcast/internal/config"
	"github.com/abhisek/cropcast/internal/logging"
	"github.com/abhisek/cropcast/internal/predict"
)

var (
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "cropcast",
	Short: "Crop recommendations from soil and climate readings",
	Long: "cropcast collects seven soil and climate measurements, asks a prediction " +
		"service which crops suit them, and shows the ranked result.",
	SilenceUsage:      true,
	PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync() },
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentPreRunE = setup

	flags := rootCmd.PersistentFlags()
	flags.String("endpoint", "", "Prediction service base URL (overrides CROPCAST_ENDPOINT)")
	flags.Duration("timeout", 0, "Per-request timeout (overrides CROPCAST_TIMEOUT)")
	flags.String("log-level", "", "debug, info, warn or error (overrides CROPCAST_LOG_LEVEL)")
	flags.String("log-file", "", "Write JSON logs to this file (overrides CROPCAST_LOG_FILE)")

	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(stubServerCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and builds the logger. The TUI owns the
// terminal, so it only logs when a log file is configured.
func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	endpoint, _ := flags.GetString("endpoint")
	timeout, _ := flags.GetDuration("timeout")
	level, _ := flags.GetString("log-level")
	file, _ := flags.GetString("log-file")

	var err error
	cfg, err = config.Load(config.Overrides{
		Endpoint: endpoint,
		Timeout:  timeout,
		LogLevel: level,
		LogFile:  file,
	})
	if err != nil {
		return err
	}

	logger, err = logging.New(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		Quiet: cmd == rootCmd,
	})
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("endpoint", cfg.Endpoint),
		zap.Duration("timeout", cfg.Timeout),
	)
	return nil
}

// newPredictor builds the HTTP client wrapped with request logging.
func newPredictor() (*predict.Client, predict.Predictor, error) {
	client, err := predict.NewClient(cfg.Endpoint,
		predict.WithTimeout(cfg.Timeout),
		predict.WithUserAgent("cropcast/"+version),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create client: %w", err)
	}
	return client, predict.WithLogging(client, logger), nil
}
