package strategy

import (
	"math"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

type Volatility string

const (
	LowVolatility    Volatility = "LOW"
	MediumVolatility Volatility = "MEDIUM"
	HighVolatility   Volatility = "HIGH"
)

// CoefficientOfVariation returns stddev/mean of the weeks in which the player
// scored, and how many such weeks there were.
func CoefficientOfVariation(p *models.Player, throughWeek int) (cv float64, weeks int) {
	var pts []float64
	for _, v := range p.PointsThrough(throughWeek) {
		if v > 0 {
			pts = append(pts, v)
		}
	}
	if len(pts) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range pts {
		mean += v
	}
	mean /= float64(len(pts))
	variance := 0.0
	for _, v := range pts {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(pts))
	return math.Sqrt(variance) / mean, len(pts)
}

// ConsistencyTier buckets a player's weekly volatility. Players with fewer
// than MIN_WEEKS scored weeks are MEDIUM.
func ConsistencyTier(c params.ConsistencyScoring, p *models.Player, throughWeek int) Volatility {
	cv, weeks := CoefficientOfVariation(p, throughWeek)
	switch {
	case weeks < c.MinWeeks || weeks == 0:
		return MediumVolatility
	case cv <= c.LowCVThreshold:
		return LowVolatility
	case cv >= c.HighCVThreshold:
		return HighVolatility
	default:
		return MediumVolatility
	}
}

func (m *Manager) ConsistencyTier(p *models.Player, throughWeek int) Volatility {
	return ConsistencyTier(m.league.Consistency, p, throughWeek)
}

// ApplyConsistencyMultiplier scales baseScore by the multiplier of the
// player's volatility tier over weeks before throughWeek.
func (m *Manager) ApplyConsistencyMultiplier(baseScore float64, p *models.Player, throughWeek int) float64 {
	return ApplyConsistencyMultiplier(m.league.Consistency, baseScore, p, throughWeek)
}

func ApplyConsistencyMultiplier(c params.ConsistencyScoring, baseScore float64, p *models.Player, throughWeek int) float64 {
	switch ConsistencyTier(c, p, throughWeek) {
	case LowVolatility:
		return baseScore * c.Multipliers.Low
	case HighVolatility:
		return baseScore * c.Multipliers.High
	default:
		return baseScore * c.Multipliers.Medium
	}
}
