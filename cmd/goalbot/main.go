package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alejandrodnm/goalbot/config"
	"github.com/alejandrodnm/goalbot/internal/adapters/apifootball"
	"github.com/alejandrodnm/goalbot/internal/adapters/betfair"
	"github.com/alejandrodnm/goalbot/internal/adapters/notify"
	"github.com/alejandrodnm/goalbot/internal/adapters/storage"
	"github.com/alejandrodnm/goalbot/internal/ports"
	"github.com/alejandrodnm/goalbot/internal/trader"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one poll cycle and exit")
	dryRun := flag.Bool("dry-run", false, "log the would-be entry order and stop, never trade")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	positions := flag.Bool("positions", false, "print the position journal and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	console := notify.NewConsole()

	if *positions {
		records, err := store.ListPositions(context.Background(), 100)
		if err != nil {
			slog.Error("failed to read position journal", "err", err)
			os.Exit(1)
		}
		console.PrintPositions(records)
		return
	}

	if err := cfg.ValidateSecrets(); err != nil {
		slog.Error("missing credentials", "err", err)
		os.Exit(1)
	}

	slog.Info("goalbot starting",
		"config", *configPath,
		"interval", cfg.PollInterval(),
		"entry_window", fmt.Sprintf("[%d,%d]", cfg.Trading.MinMinute, cfg.Trading.MaxMinute),
		"cashout_minute", cfg.Trading.CashoutMinute,
		"test_mode", cfg.Trading.TestMode,
		"dry_run", *dryRun,
		"once", *once,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !cfg.Trading.TestMode && !*dryRun {
		fmt.Printf("\n⚠️  LIVE MODE — REAL MONEY WILL BE WAGERED\n")
		fmt.Printf("   Stake: %.2f | Max price: %.2f | Cashout minute: %d\n",
			cfg.Trading.Stake, cfg.Trading.MaxPrice, cfg.Trading.CashoutMinute)
		fmt.Printf("   Press Ctrl+C within 5 seconds to abort...\n\n")

		select {
		case <-time.After(5 * time.Second):
		case <-ctx.Done():
			slog.Info("live mode aborted by user")
			return
		}
	}

	session := betfair.NewSession(
		cfg.Exchange.IdentityURL,
		cfg.Secrets.ExchangeAppKey,
		cfg.Secrets.ExchangeUsername,
		cfg.Secrets.ExchangePassword,
	)
	if err := session.Login(ctx); err != nil {
		slog.Error("exchange login failed", "err", err)
		os.Exit(1)
	}
	go session.RunKeepAlive(ctx)

	exchange := betfair.NewClient(cfg.Exchange.BettingURL, session)
	feed := apifootball.NewClient(cfg.Feed.BaseURL, cfg.Secrets.FeedAPIKey, cfg.Feed.Countries)

	var notifier ports.Notifier = console
	if cfg.Notify.TelegramEnabled {
		notifier = notify.NewMulti(console, notify.NewTelegram(cfg.Secrets.TelegramToken, cfg.Secrets.TelegramChatID))
	}

	monitorCfg := trader.MonitorConfig{
		MaxPrice:      cfg.Trading.MaxPrice,
		CashoutMinute: cfg.Trading.CashoutMinute,
		PollInterval:  cfg.PollInterval(),
		DryRun:        *dryRun,
		Stake: trader.StakeConfig{
			MinBackStake:     cfg.Trading.MinBackStake,
			TestMode:         cfg.Trading.TestMode,
			MinLiabilityMode: cfg.Trading.MinLiabilityMode,
			MaxTestLiability: cfg.Trading.MaxTestLiability,
			TestStakeCap:     cfg.Trading.TestStakeCap,
			TestStake:        cfg.Trading.TestStake,
			Stake:            cfg.Trading.Stake,
			MaxLiveLiability: cfg.Trading.MaxLiveLiability,
		},
	}

	resolver := trader.NewResolver(exchange, trader.RetryPolicy{
		Attempts: cfg.Trading.MarketRetry,
		Delay:    cfg.MarketRetryDelay(),
	})
	monitor := trader.NewMonitor(monitorCfg, feed, resolver, exchange, exchange, notifier, store)

	orch := trader.NewOrchestrator(trader.OrchestratorConfig{
		PollInterval: cfg.PollInterval(),
		Detector: trader.DetectorConfig{
			MinMinute: cfg.Trading.MinMinute,
			MaxMinute: cfg.Trading.MaxMinute,
		},
		Monitor: monitorCfg,
		Once:    *once,
	}, feed, monitor, notifier, store)

	if err := orch.Run(ctx); err != nil {
		slog.Error("orchestrator exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("goalbot stopped cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
