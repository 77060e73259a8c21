package accuracy

import (
	"context"
	"errors"
	"fmt"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/historical"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/scoring"
)

var ErrNoSeasons = errors.New("no seasons to evaluate")

// ConfigEvaluator scores a candidate on every horizon.
type ConfigEvaluator interface {
	Evaluate(ctx context.Context, c Candidate) (map[params.Horizon]AccuracyResult, error)
}

// Evaluator replays loaded seasons. Seasons are read-only and shared by
// concurrent Evaluate calls.
type Evaluator struct {
	seasons []*historical.Season
}

func NewEvaluator(seasons []*historical.Season) (*Evaluator, error) {
	if len(seasons) == 0 {
		return nil, ErrNoSeasons
	}
	return &Evaluator{seasons: seasons}, nil
}

// SeasonLabels lists the evaluated seasons in load order.
func (e *Evaluator) SeasonLabels() []string {
	out := make([]string, len(e.seasons))
	for i, s := range e.seasons {
		out[i] = s.Label
	}
	return out
}

func (e *Evaluator) Evaluate(ctx context.Context, c Candidate) (map[params.Horizon]AccuracyResult, error) {
	out := make(map[params.Horizon]AccuracyResult, len(params.Horizons))
	for _, h := range params.Horizons {
		cfg, ok := c.Configs[h]
		if !ok {
			return nil, fmt.Errorf("candidate %s: %w: no %s config", c.Label, params.ErrMissingParameter, h)
		}
		var perSeason []SeasonResult
		for _, s := range e.seasons {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			perSeason = append(perSeason, SeasonResult{Season: s.Label, Result: EvaluateSeason(s, cfg.Parameters, h)})
		}
		out[h] = AggregateSeasonResults(perSeason)
	}
	return out, nil
}

// seasonActuals feeds realised points to the performance multiplier.
type seasonActuals struct {
	season *historical.Season
}

func (a seasonActuals) Points(id, week int) (float64, bool) {
	return a.season.ActualPoints(id, week)
}

// EvaluateSeason computes one season's MAE for horizon h. The ros horizon
// compares each player's pre-season projection with their season total;
// week horizons compare weekly projections with that week's points.
func EvaluateSeason(s *historical.Season, p params.ScoringParameters, h params.Horizon) AccuracyResult {
	engine := scoring.NewEngine(p, s, seasonActuals{s})
	if !h.IsWeekly() {
		var samples []Sample
		for _, pl := range s.DraftPool() {
			act, ok := s.ActualPlayer(pl.ID)
			if !ok {
				continue
			}
			samples = append(samples, Sample{
				PlayerID:  pl.ID,
				Projected: engine.SeasonProjection(pl, models.FirstWeek),
				Actual:    act.SeasonPoints(),
			})
		}
		return CalculateMAE(samples)
	}

	start, end := h.Weeks()
	projections, actuals := WeekPoints{}, WeekPoints{}
	for w := start; w <= end; w++ {
		snap, ok := s.Weeks[w]
		if !ok {
			continue
		}
		projections[w] = make(map[int]float64, len(snap.Projected))
		actuals[w] = make(map[int]float64, len(snap.Projected))
		for id, pl := range snap.Projected {
			if _, ok := s.ProjectedPoints(id, w); !ok {
				continue
			}
			projections[w][id] = engine.WeekProjection(pl, w)
			if a, ok := s.ActualPoints(id, w); ok {
				actuals[w][id] = a
			}
		}
	}
	return CalculateWeeklyMAE(projections, actuals, start, end)
}
