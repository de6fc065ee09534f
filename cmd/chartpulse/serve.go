package main

import (
	"context"
	"sync"

	"ChartPulse/internal/collector"
	"ChartPulse/internal/httpapi"
	"ChartPulse/internal/logger"
	"ChartPulse/internal/metrics"
	"ChartPulse/internal/notifier"
	"ChartPulse/internal/paper"
	"ChartPulse/internal/scheduler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, digest scheduler and Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, log, err := opts.load()
	if err != nil {
		return err
	}
	log.Info("ChartPulse starting",
		logger.String("symbol", cfg.DataSource.Symbol),
		logger.Bool("telegram", cfg.TelegramEnabled()),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	fetcher, err := newGuardedFetcher(cfg, m, log)
	if err != nil {
		return err
	}
	rec := openRecorder(cfg, log)
	defer rec.Close()

	// registered after rec.Close so bot handlers drain before the recorder closes
	var bg background
	defer bg.Wait()

	col := collector.NewCollector(fetcher, cfg.DataSource.HistoryDays, rec, m, log)
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)

	book, err := paper.NewBook(cfg.Paper.StateFile)
	if err != nil {
		return err
	}
	trader := paper.NewTrader(book, col, rec, tn, m, log)

	h := httpapi.NewHandler(log, col, trader, rec, cfg.DataSource.Symbol)
	h.BreakerState = fetcher.State
	srv := httpapi.NewServer(h, log,
		httpapi.WithHost(cfg.Server.Host),
		httpapi.WithPort(cfg.Server.Port),
		httpapi.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		httpapi.WithCORS(cfg.Server.CORS),
		httpapi.WithMetrics(m, reg),
	)
	srv.Start()

	sched := scheduler.NewScheduler(ctx, col, trader, tn, cfg.DataSource.Symbol, log)
	if cfg.TelegramEnabled() {
		if err := sched.RegisterAll(cfg.Schedule.DigestCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		bg.Go(func() { tn.StartPolling(ctx, sched.HandleCommand) })
		log.Info("telegram polling started")

		if cfg.Schedule.RunOnStart {
			log.Info("run_on_start enabled, sending digest now")
			bg.Go(sched.RunDigestNow)
		}
	} else {
		log.Info("telegram not configured, digest and bot disabled")
	}

	log.Info("ChartPulse is running, press Ctrl+C to stop")
	<-ctx.Done()

	log.Info("shutdown signal received, stopping")
	if err := srv.Stop(context.Background()); err != nil {
		log.Error("http shutdown", logger.Error(err))
	}
	log.Info("ChartPulse stopped")
	return nil
}

// background tracks goroutines that share resources owned by runServe.
type background struct {
	wg sync.WaitGroup
}

func (b *background) Go(fn func()) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn()
	}()
}

func (b *background) Wait() { b.wg.Wait() }
