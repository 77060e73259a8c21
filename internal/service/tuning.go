package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/accuracy"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/historical"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/players"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/repository/memory"
)

var ErrSweepRunning = errors.New("a sweep is already running")

type Options struct {
	OutputDir string
	Workers   int
	Rounds    int
	// Recorder receives every evaluated result. Optional.
	Recorder accuracy.Recorder
	Clock    clockwork.Clock
}

// TuningService runs accuracy sweeps over loaded seasons and formats their
// results for chat and logs.
type TuningService struct {
	seasons  []*historical.Season
	baseline *params.Bundle
	schema   *accuracy.SweepSchema
	repo     *memory.Repository
	pool     *players.Manager
	opts     Options
	running  atomic.Bool
}

func NewTuningService(seasons []*historical.Season, baseline *params.Bundle, schema *accuracy.SweepSchema, repo *memory.Repository, opts Options) (*TuningService, error) {
	if len(seasons) == 0 {
		return nil, accuracy.ErrNoSeasons
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	// player lookups use the most recent season
	latest := seasons[len(seasons)-1]
	return &TuningService{
		seasons:  seasons,
		baseline: baseline,
		schema:   schema,
		repo:     repo,
		pool:     players.NewManager(latest.DraftPool()),
		opts:     opts,
	}, nil
}

func (s *TuningService) Running() bool {
	return s.running.Load()
}

func (s *TuningService) LastSummary() *accuracy.Summary {
	return s.repo.GetSummary()
}

func (s *TuningService) SeasonLabels() []string {
	out := make([]string, len(s.seasons))
	for i, season := range s.seasons {
		out[i] = season.Label
	}
	return out
}

// RunSweep runs one accuracy sweep and stores its summary. Only one sweep
// runs at a time.
func (s *TuningService) RunSweep(ctx context.Context, resume bool) (*accuracy.Summary, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSweepRunning
	}
	defer s.running.Store(false)

	eval, err := accuracy.NewEvaluator(s.seasons)
	if err != nil {
		return nil, err
	}
	gen := accuracy.NewConfigGenerator(s.baseline, s.schema)
	sweep := accuracy.NewSweep(accuracy.SweepConfig{
		Generator: gen,
		Runner:    accuracy.NewParallelAccuracyRunner(eval, s.opts.Workers),
		Results:   accuracy.NewAccuracyResultsManager(s.baseline, s.opts.OutputDir, s.opts.Clock),
		Seasons:   eval.SeasonLabels(),
		Rounds:    s.opts.Rounds,
		Recorder:  s.opts.Recorder,
		Progress: func(done, total int) {
			slog.Debug("Sweep progress", "done", done, "total", total)
		},
		Clock: s.opts.Clock,
	})

	start := s.opts.Clock.Now()
	slog.Info("Starting sweep", "seasons", eval.SeasonLabels(), "parameters", s.schema.Len(), "resume", resume)
	sum, err := sweep.Run(ctx, resume)
	if err != nil {
		return nil, fmt.Errorf("running sweep: %w", err)
	}
	s.repo.SaveSummary(sum)
	slog.Info("Sweep finished", "evaluated", sum.Evaluated, "improvements", sum.Improvements, "took", s.opts.Clock.Since(start), "output", sum.OutputDir)
	return sum, nil
}

func (s *TuningService) GetStatus() string {
	var sb strings.Builder
	sb.WriteString("📊 *Tuning Status*\n\n")
	if s.Running() {
		sb.WriteString("A sweep is running now.\n\n")
	}
	sum := s.LastSummary()
	if sum == nil {
		sb.WriteString("No sweep has finished yet.")
		return sb.String()
	}
	sb.WriteString(FormatSummary(sum))
	return sb.String()
}

// GetBest reports the best config for one horizon from the last sweep.
func (s *TuningService) GetBest(horizon string) (string, error) {
	h, err := params.ParseHorizon(strings.TrimSpace(horizon))
	if err != nil {
		return "", err
	}
	sum := s.LastSummary()
	if sum == nil {
		return "No sweep has finished yet.", nil
	}
	b, ok := sum.Best[h]
	if !ok {
		return fmt.Sprintf("No valid result for *%s* yet.", h), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 *Best %s config*\n\n", h))
	sb.WriteString(fmt.Sprintf("Config: `%s`\n", b.ConfigName))
	sb.WriteString(fmt.Sprintf("MAE: %.3f over %d samples\n", b.MAE, b.PlayerCount))
	sb.WriteString(fmt.Sprintf("Seasons: %s\n", strings.Join(sum.Seasons, ", ")))
	sb.WriteString(fmt.Sprintf("Saved to: `%s`", sum.OutputDir))
	return sb.String(), nil
}

// FindPlayer looks a player up by fuzzy name in the latest season.
func (s *TuningService) FindPlayer(name string) (string, error) {
	found := s.pool.Search(name, 3)
	if len(found) == 0 {
		return "", fmt.Errorf("%w: %q", players.ErrUnknownPlayer, name)
	}

	var sb strings.Builder
	for i, p := range found {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("*%s* (%s - %s)\n", p.Name, p.Position, p.Team))
		sb.WriteString("━━━━━━━━━━━━━━━━\n")
		sb.WriteString(fmt.Sprintf("Projected: %.1f pts\n", p.SeasonPoints()))
		if p.ADP != nil {
			sb.WriteString(fmt.Sprintf("ADP: %.1f\n", *p.ADP))
		}
		if p.ByeWeek > 0 {
			sb.WriteString(fmt.Sprintf("Bye: week %d\n", p.ByeWeek))
		}
	}
	return sb.String(), nil
}

// FormatSummary renders a sweep summary as Telegram markdown.
func FormatSummary(sum *accuracy.Summary) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Finished: %s\n", sum.FinishedAt.Format(time.RFC822)))
	sb.WriteString(fmt.Sprintf("Seasons: %s\n", strings.Join(sum.Seasons, ", ")))
	sb.WriteString(fmt.Sprintf("Configs evaluated: %d (%d improvements)\n", sum.Evaluated, sum.Improvements))
	if sum.Resumed {
		sb.WriteString("Resumed from checkpoint\n")
	}
	sb.WriteString("\n*Best MAE by horizon:*\n")

	horizons := make([]params.Horizon, 0, len(sum.Best))
	for h := range sum.Best {
		horizons = append(horizons, h)
	}
	order := make(map[params.Horizon]int, len(params.Horizons))
	for i, h := range params.Horizons {
		order[h] = i
	}
	sort.Slice(horizons, func(i, j int) bool { return order[horizons[i]] < order[horizons[j]] })
	for _, h := range horizons {
		b := sum.Best[h]
		sb.WriteString(fmt.Sprintf("  • %s: %.3f (%d samples)\n", h, b.MAE, b.PlayerCount))
	}
	if len(horizons) == 0 {
		sb.WriteString("  No valid results.\n")
	}
	return sb.String()
}
