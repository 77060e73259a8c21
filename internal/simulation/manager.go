package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"sync"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

const DefaultSimulationsPerConfig = 10

// ParallelLeagueRunner runs independent leagues for one bundle on a bounded
// worker pool. Simulation i is seeded with seed+i so runs are repeatable.
type ParallelLeagueRunner struct {
	season  SeasonData
	opts    LeagueOptions
	workers int
	seed    int64
	clock   clockwork.Clock
}

func NewParallelLeagueRunner(season SeasonData, opts LeagueOptions, workers int, seed int64, clock clockwork.Clock) *ParallelLeagueRunner {
	if workers < 1 {
		workers = 1
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	return &ParallelLeagueRunner{season: season, opts: opts, workers: workers, seed: seed, clock: clock}
}

// RunSimulations plays n leagues with bundle and returns the results in
// simulation order. The first failing league cancels the rest.
func (r *ParallelLeagueRunner) RunSimulations(ctx context.Context, bundle *params.Bundle, n int) ([]*LeagueResult, error) {
	results := make([]*LeagueResult, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(r.seed + int64(i)))
			sim, err := NewLeagueSimulation(bundle, r.season, r.opts, rng)
			if err != nil {
				return fmt.Errorf("simulation %d: %w", i+1, err)
			}
			res, err := sim.Run(ctx)
			if err != nil {
				return fmt.Errorf("simulation %d: %w", i+1, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SimulationManager evaluates candidate bundles and keeps the best one.
type SimulationManager struct {
	runner        *ParallelLeagueRunner
	simsPerConfig int
	clock         clockwork.Clock

	mu      sync.RWMutex
	best    *ConfigPerformance
	results []*ConfigPerformance
}

func NewSimulationManager(runner *ParallelLeagueRunner, simsPerConfig int) *SimulationManager {
	if simsPerConfig < 1 {
		simsPerConfig = DefaultSimulationsPerConfig
	}
	return &SimulationManager{runner: runner, simsPerConfig: simsPerConfig, clock: runner.clock}
}

// EvaluateConfig simulates bundle and reports whether it became the new best.
func (m *SimulationManager) EvaluateConfig(ctx context.Context, name string, bundle *params.Bundle) (*ConfigPerformance, bool, error) {
	results, err := m.runner.RunSimulations(ctx, bundle, m.simsPerConfig)
	if err != nil {
		return nil, false, fmt.Errorf("evaluate %s: %w", name, err)
	}
	perf := NewConfigPerformance(name, bundle, m.clock.Now())
	for _, r := range results {
		perf.AddResult(r)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, perf)
	improved := perf.IsBetterThan(m.best)
	if improved {
		m.best = perf
		slog.Info("New best league config", "config", name, "win_rate", perf.WinRate(), "ppg", perf.PointsPerGame())
	}
	return perf, improved, nil
}

func (m *SimulationManager) Best() *ConfigPerformance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.best
}

func (m *SimulationManager) Results() []*ConfigPerformance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*ConfigPerformance(nil), m.results...)
}

// SaveOptimalConfig writes the best bundle into a timestamped folder under
// dir with its league record embedded in draft_config.json.
func (m *SimulationManager) SaveOptimalConfig(dir string) (string, error) {
	best := m.Best()
	if best == nil {
		return "", fmt.Errorf("save optimal config: no evaluated configs")
	}
	out := filepath.Join(dir, "optimal_"+m.clock.Now().Format("2006-01-02_15-04-05"))
	b := best.Bundle.Clone()
	ros := b.Scoring[params.ROS]
	ros.PerformanceMetrics = best.Metrics()
	b.Scoring[params.ROS] = ros
	if err := b.Save(out); err != nil {
		return "", fmt.Errorf("save optimal config: %w", err)
	}
	return out, nil
}
