package main

import (
	"fmt"
	"os"

	"ChartPulse/internal/collector"
	"ChartPulse/internal/config"
	"ChartPulse/internal/logger"
	"ChartPulse/internal/metrics"
	"ChartPulse/internal/recorder"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "chartpulse",
		Short:         "Price dashboard service with technical indicators",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", defaultPath, "path to config file")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newQuoteCmd(opts))
	return root
}

func (o *rootOptions) load() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation: %w", err)
	}
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

// newGuardedFetcher builds the configured provider behind the rate limiter and breaker.
func newGuardedFetcher(cfg *config.Config, m *metrics.Recorder, log *logger.Logger) (*collector.GuardedFetcher, error) {
	fetcher, err := collector.NewFetcher(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("data source", logger.String("provider", fetcher.Name()))
	return collector.NewGuardedFetcher(fetcher, collector.GuardOptions{
		RequestsPerSecond: cfg.DataSource.RequestsPerSecond,
		Burst:             cfg.DataSource.Burst,
		MaxFailures:       cfg.Breaker.MaxFailures,
		OpenTimeout:       cfg.Breaker.OpenTimeout,
	}, m, log), nil
}

// openRecorder falls back to a no-op recorder when the database cannot be opened.
func openRecorder(cfg *config.Config, log *logger.Logger) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
	if err != nil {
		log.Warn("init sqlite recorder failed, using noop", logger.Error(err))
		return recorder.NewNoopRecorder()
	}
	return rec
}
