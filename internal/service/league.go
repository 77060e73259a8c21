package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/accuracy"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/simulation"
)

// RunLeagueTournament sweeps schema parameters one at a time, simulating a
// league season per candidate, and keeps whichever bundle wins most.
func RunLeagueTournament(ctx context.Context, mgr *simulation.SimulationManager, gen *accuracy.ConfigGenerator, rounds int) (*simulation.ConfigPerformance, error) {
	best := gen.Baseline()
	if _, _, err := mgr.EvaluateConfig(ctx, "baseline", best); err != nil {
		return nil, err
	}
	for round := 1; round <= max(rounds, 1); round++ {
		for _, pv := range gen.Schema().Parameters() {
			cands, err := gen.CandidatesFor(pv.Name, best.Scoring)
			if err != nil {
				return nil, err
			}
			for _, c := range cands {
				b := c.Apply(best)
				perf, improved, err := mgr.EvaluateConfig(ctx, c.Label, b)
				if err != nil {
					return nil, fmt.Errorf("round %d: %w", round, err)
				}
				slog.Debug("Evaluated league config", "config", c.Label, "win_rate", perf.WinRate())
				if improved {
					best = b
				}
			}
		}
	}
	return mgr.Best(), nil
}
