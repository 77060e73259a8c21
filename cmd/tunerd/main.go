package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/accuracy"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/api/status"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/bot"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/config"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/repository/memory"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/repository/postgres"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/scheduler"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.Logger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in, err := service.LoadInputs(cfg)
	if err != nil {
		return err
	}

	var recorder accuracy.Recorder
	if cfg.Results.DSN != "" {
		store, err := postgres.NewStore(ctx, cfg.Results.DSN)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		recorder = store
	}

	repo := memory.NewRepository()
	tuningService, err := service.NewTuningService(in.Seasons, in.Baseline, in.Schema, repo, service.Options{
		OutputDir: cfg.Data.OutputDir,
		Workers:   cfg.Sweep.Workers,
		Rounds:    cfg.Sweep.Rounds,
		Recorder:  recorder,
	})
	if err != nil {
		return err
	}

	sendMessage := func(text string) error {
		slog.Info("Sweep report", "text", text)
		return nil
	}
	if cfg.TelegramBot.Enabled() {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, tuningService)
		if err != nil {
			return err
		}
		sendMessage = telegramBot.SendMessage
		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	} else {
		slog.Info("Telegram bot disabled")
	}

	sched, err := scheduler.NewScheduler(tuningService, sendMessage, cfg.Daemon.Cron, cfg.Daemon.Timezone, clockwork.NewRealClock())
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()
	slog.Info("Next sweep scheduled", "at", sched.NextRun())

	server := status.NewServer(cfg.Daemon.HTTPAddr, tuningService)
	if err := server.ListenAndServe(ctx); err != nil {
		return err
	}
	slog.Info("Shutting down gracefully...")

	return nil
}
