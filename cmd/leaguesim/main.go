package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/accuracy"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/config"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/service"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/simulation"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running league simulation", "error", err)
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
	// drafts replay the most recent season
	season := in.Seasons[len(in.Seasons)-1]

	runner := simulation.NewParallelLeagueRunner(season, simulation.LeagueOptions{
		Teams:         cfg.League.Teams,
		DraftPosition: cfg.League.DraftPosition,
	}, cfg.Sweep.Workers, cfg.Sweep.Seed, clockwork.NewRealClock())
	mgr := simulation.NewSimulationManager(runner, cfg.League.SimulationsPerConfig)

	best, err := service.RunLeagueTournament(ctx, mgr, accuracy.NewConfigGenerator(in.Baseline, in.Schema), cfg.Sweep.Rounds)
	if err != nil {
		return err
	}
	dir, err := mgr.SaveOptimalConfig(cfg.Data.OutputDir)
	if err != nil {
		return err
	}

	fmt.Printf("Best config: %s\n", best.Name)
	fmt.Printf("Record: %d-%d (win rate %.3f)\n", best.Wins, best.Losses, best.WinRate())
	fmt.Printf("Points per game: %.2f\n", best.PointsPerGame())
	fmt.Printf("Saved to: %s\n", dir)
	return nil
}
