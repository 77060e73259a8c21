package accuracy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

// Recorder persists every evaluated horizon result. Optional.
type Recorder interface {
	RecordResult(ctx context.Context, p *AccuracyConfigPerformance) error
}

type SweepConfig struct {
	Generator *ConfigGenerator
	Runner    *ParallelAccuracyRunner
	Results   *AccuracyResultsManager
	Seasons   []string
	Rounds    int
	Recorder  Recorder
	Progress  ProgressFunc
	Clock     clockwork.Clock
}

// BestResult is the summary line for one horizon.
type BestResult struct {
	ConfigName  string  `json:"config_name"`
	ConfigID    string  `json:"config_id"`
	MAE         float64 `json:"mae"`
	PlayerCount int     `json:"player_count"`
}

// Summary describes a finished sweep.
type Summary struct {
	ID           string                        `json:"id"`
	StartedAt    time.Time                     `json:"started_at"`
	FinishedAt   time.Time                     `json:"finished_at"`
	Rounds       int                           `json:"rounds"`
	Evaluated    int                           `json:"evaluated"`
	Improvements int                           `json:"improvements"`
	Resumed      bool                          `json:"resumed"`
	Seasons      []string                      `json:"seasons"`
	OutputDir    string                        `json:"output_dir"`
	Best         map[params.Horizon]BestResult `json:"best"`
}

// Sweep runs a single-parameter-at-a-time tournament: for each round and
// each schema parameter, every value is tried on top of the current best
// config of every horizon.
type Sweep struct {
	cfg SweepConfig
}

func NewSweep(cfg SweepConfig) *Sweep {
	if cfg.Rounds < 1 {
		cfg.Rounds = 1
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &Sweep{cfg: cfg}
}

// Run sweeps every parameter for the configured number of rounds, writing a
// checkpoint after each parameter and the optimal bundle at the end. With
// resume set, it continues after the newest checkpoint in the output folder.
func (s *Sweep) Run(ctx context.Context, resume bool) (*Summary, error) {
	sum := &Summary{
		ID:        uuid.NewString(),
		StartedAt: s.cfg.Clock.Now(),
		Rounds:    s.cfg.Rounds,
		Seasons:   append([]string(nil), s.cfg.Seasons...),
	}
	schema := s.cfg.Generator.Schema()
	round, start := 1, 0

	resumed := false
	if resume {
		var err error
		round, start, resumed, err = s.resume(schema)
		if err != nil {
			return nil, err
		}
	}
	sum.Resumed = resumed
	if !resumed {
		n, err := s.evaluate(ctx, []Candidate{s.cfg.Generator.BaselineCandidate()})
		if err != nil {
			return nil, fmt.Errorf("baseline: %w", err)
		}
		sum.Improvements += n
		sum.Evaluated++
	}

	for ; round <= s.cfg.Rounds; round++ {
		for idx, pv := range s.cfg.Generator.ParameterValueSets() {
			if idx < start {
				continue
			}
			cands, err := s.cfg.Generator.CandidatesFor(pv.Name, s.cfg.Results.BestConfigs())
			if err != nil {
				return nil, err
			}
			slog.Info("Sweeping parameter", "round", round, "parameter", pv.Name, "candidates", len(cands))
			n, err := s.evaluate(ctx, cands)
			if err != nil {
				return nil, fmt.Errorf("round %d %s: %w", round, pv.Name, err)
			}
			sum.Improvements += n
			sum.Evaluated += len(cands)
			if _, err := s.cfg.Results.SaveIntermediateResults(round, idx, pv.Name, s.cfg.Seasons); err != nil {
				return nil, err
			}
		}
		start = 0
	}

	dir, err := s.cfg.Results.SaveOptimalConfigs()
	if err != nil {
		return nil, err
	}
	sum.OutputDir = dir
	sum.FinishedAt = s.cfg.Clock.Now()
	sum.Best = make(map[params.Horizon]BestResult, len(params.Horizons))
	for _, h := range params.Horizons {
		if p, ok := s.cfg.Results.Best(h); ok {
			sum.Best[h] = BestResult{ConfigName: p.Config.ConfigName, ConfigID: p.ID, MAE: p.MAE(), PlayerCount: p.PlayerCount()}
		}
	}
	return sum, nil
}

func (s *Sweep) resume(schema *SweepSchema) (round, start int, ok bool, err error) {
	dir, meta, err := LatestCheckpoint(s.cfg.Results.OutputDir())
	if errors.Is(err, ErrNoCheckpoint) {
		slog.Info("No checkpoint to resume from, starting fresh", "dir", s.cfg.Results.OutputDir())
		return 1, 0, false, nil
	} else if err != nil {
		return 0, 0, false, fmt.Errorf("finding checkpoint: %w", err)
	}
	b, err := params.LoadBundle(dir)
	if err != nil {
		return 0, 0, false, fmt.Errorf("loading checkpoint: %w", err)
	}
	s.cfg.Results.Seed(b, s.cfg.Seasons)

	names := schema.Names()
	if meta.ParameterIndex >= len(names) || names[meta.ParameterIndex] != meta.Parameter {
		slog.Warn("Checkpoint parameter does not match schema, restarting its round", "parameter", meta.Parameter, "index", meta.ParameterIndex)
		return meta.Round, 0, true, nil
	}
	round, start = meta.Round, meta.ParameterIndex+1
	if start >= len(names) {
		round, start = round+1, 0
	}
	if round > s.cfg.Rounds {
		// the checkpointed sweep finished; start a new pass from its configs
		round, start = 1, 0
	}
	slog.Info("Resuming sweep", "checkpoint", dir, "round", round, "next_parameter_index", start)
	return round, start, true, nil
}

// evaluate runs candidates and feeds every horizon result to the results
// manager, returning how many became a new best.
func (s *Sweep) evaluate(ctx context.Context, cands []Candidate) (int, error) {
	res, err := s.cfg.Runner.EvaluateConfigsParallel(ctx, cands, s.cfg.Progress)
	if err != nil {
		return 0, err
	}
	improved := 0
	for _, cr := range res {
		for _, h := range params.Horizons {
			p, better := s.cfg.Results.AddResult(h, cr.Candidate.Configs[h], cr.Results[h], s.cfg.Seasons)
			if better {
				improved++
			}
			if s.cfg.Recorder == nil {
				continue
			}
			if err := s.cfg.Recorder.RecordResult(ctx, p); err != nil {
				slog.Error("Failed to record result", "horizon", h, "config", p.Config.ConfigName, "error", err)
			}
		}
	}
	return improved, nil
}
