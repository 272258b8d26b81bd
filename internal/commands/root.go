// Package commands wires configuration, logging and the sandbox components
// into the sandbox command line.
package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"StockSandbox/internal/collector"
	"StockSandbox/internal/config"
	"StockSandbox/internal/logging"
	"StockSandbox/internal/recorder"
	"StockSandbox/internal/synth"
)

const defaultConfigPath = "configs/config.yaml"

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Synthetic stock series generator",
	Long: `Generates randomized daily price and volume series for demo charts,
with summary statistics and 10/30-day simple moving averages.

Series are not real market data. The symbol only labels the output.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CONFIG_PATH or "+defaultConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.AddCommand(generateCmd, serveCmd)
}

// app holds the components shared by subcommands.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	source   *collector.SyntheticSource
	recorder recorder.Recorder
}

func setup() (*app, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	engine := synth.NewEngine(synth.WithLocation(loc))

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		} else {
			rec = sr
		}
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		source:   collector.NewSyntheticSource(engine, cfg.Generator.Seed),
		recorder: rec,
	}, nil
}

func (a *app) close() {
	if err := a.recorder.Close(); err != nil {
		a.logger.Error().Err(err).Msg("close recorder")
	}
}
