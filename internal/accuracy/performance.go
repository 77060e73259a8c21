package accuracy

import (
	"time"

	"github.com/google/uuid"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

// AccuracyConfigPerformance is one scoring config's result for one horizon.
type AccuracyConfigPerformance struct {
	ID          string
	Horizon     params.Horizon
	Config      params.ScoringConfig
	Result      AccuracyResult
	Seasons     []string
	EvaluatedAt time.Time
}

func NewAccuracyConfigPerformance(h params.Horizon, cfg params.ScoringConfig, r AccuracyResult, seasons []string, at time.Time) *AccuracyConfigPerformance {
	return &AccuracyConfigPerformance{
		ID:          uuid.NewString(),
		Horizon:     h,
		Config:      cfg.Clone(),
		Result:      r,
		Seasons:     append([]string(nil), seasons...),
		EvaluatedAt: at,
	}
}

func (p *AccuracyConfigPerformance) MAE() float64 {
	return p.Result.MAE
}

func (p *AccuracyConfigPerformance) PlayerCount() int {
	return p.Result.PlayerCount
}

// IsBetterThan reports whether p should replace other as best. Results with
// no players never win; a strictly lower MAE is required otherwise.
func (p *AccuracyConfigPerformance) IsBetterThan(other *AccuracyConfigPerformance) bool {
	if p.PlayerCount() == 0 {
		return false
	}
	if other == nil || other.PlayerCount() == 0 {
		return true
	}
	return p.MAE() < other.MAE()
}

// Metrics is the block embedded into the saved config file.
func (p *AccuracyConfigPerformance) Metrics() *params.PerformanceMetrics {
	return &params.PerformanceMetrics{
		MAE:         p.Result.MAE,
		PlayerCount: p.Result.PlayerCount,
		TotalError:  p.Result.TotalError,
		Horizon:     string(p.Horizon),
		Seasons:     append([]string(nil), p.Seasons...),
		ConfigID:    p.ID,
		Timestamp:   p.EvaluatedAt.Format(time.RFC3339),
	}
}
