package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"whale-alert-bot/config"
	"whale-alert-bot/internal/alert"
	"whale-alert-bot/internal/database"
	"whale-alert-bot/internal/filter"
	"whale-alert-bot/internal/metrics"
	"whale-alert-bot/internal/pipeline"
	"whale-alert-bot/internal/schedule"
	"whale-alert-bot/internal/telegram"
	"whale-alert-bot/internal/whale"
	"whale-alert-bot/lib/translation"
)

const metricsSnapshotInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	setupLogging(cfg.Debug)

	if err := run(cfg); err != nil {
		log.Fatalf("Whale alert bot stopped: %v", err)
	}
}

func setupLogging(debug bool) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if debug {
		log.SetLevel(log.DebugLevel)
	}
	log.Debug("Starting whale alert bot...")
}

func run(cfg config.Config) error {
	translation.Configure("locales", cfg.Lang)
	log.Debugf("Using language %s", translation.GetLanguage())

	store, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return errors.Wrap(err, "failed to initialize database")
	}
	defer store.Close()

	botMetrics := metrics.NewBotMetrics(prometheus.DefaultRegisterer)
	if err := botMetrics.LoadFromStore(store); err != nil {
		log.Errorf("Failed to load metrics from database: %v", err)
	}

	bot, err := telegram.NewBot(telegram.BotConfig{
		Token:       cfg.TelegramBotToken,
		Debug:       cfg.Debug,
		APIEndpoint: cfg.TelegramAPIEndpoint,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create bot")
	}

	pipe := pipeline.New(
		cfg.Sources,
		whale.NewClient(cfg.WhaleAlertAPIKey, cfg.RequestTimeout),
		alert.NewNotifier(bot, cfg.TelegramChatID),
		filter.Thresholds{
			MinAmountUSD: cfg.MinTransactionAmount,
			MinWinRate:   cfg.MinWinRate,
		},
		botMetrics,
	)

	scheduler := schedule.New(pipe.RunCycle, schedule.Window{
		Start: cfg.WindowStart,
		End:   cfg.WindowEnd,
	}, cfg.PollInterval, botMetrics)
	scheduler.Location = cfg.Location

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- metrics.Serve(ctx, cfg.MetricsPort, prometheus.DefaultGatherer)
	}()

	scheduler.Start(ctx)

	var snapshots sync.WaitGroup
	snapshots.Add(1)
	go func() {
		defer snapshots.Done()
		botMetrics.RunSnapshots(ctx, store, metricsSnapshotInterval)
	}()

	log.WithFields(log.Fields{
		"sources":  len(cfg.Sources),
		"interval": cfg.PollInterval,
	}).Info("Whale alert bot is running")

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Received shutdown signal")
	case err := <-serverErr:
		runErr = err
	}

	stop()
	scheduler.Stop()
	snapshots.Wait()

	if err := botMetrics.SaveToStore(store); err != nil {
		log.Errorf("Failed to save metrics: %v", err)
	}
	log.Info("Metrics saved, shutting down...")
	return runErr
}
