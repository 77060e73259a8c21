package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/accuracy"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/config"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/repository/memory"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/repository/postgres"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running accuracy simulation", "error", err)
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

	svc, err := service.NewTuningService(in.Seasons, in.Baseline, in.Schema, memory.NewRepository(), service.Options{
		OutputDir: cfg.Data.OutputDir,
		Workers:   cfg.Sweep.Workers,
		Rounds:    cfg.Sweep.Rounds,
		Recorder:  recorder,
	})
	if err != nil {
		return err
	}

	sum, err := svc.RunSweep(ctx, cfg.Sweep.Resume)
	if err != nil {
		return err
	}
	fmt.Println(service.FormatSummary(sum))
	return nil
}
