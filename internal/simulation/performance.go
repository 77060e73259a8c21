package simulation

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

// ConfigPerformance aggregates league results for one configuration bundle.
type ConfigPerformance struct {
	ID            string
	Name          string
	Bundle        *params.Bundle
	Wins          int
	Losses        int
	PointsFor     float64
	PointsAgainst float64
	Simulations   int
	EvaluatedAt   time.Time

	winRates []float64
}

func NewConfigPerformance(name string, bundle *params.Bundle, at time.Time) *ConfigPerformance {
	return &ConfigPerformance{ID: uuid.NewString(), Name: name, Bundle: bundle, EvaluatedAt: at}
}

func (c *ConfigPerformance) AddResult(r *LeagueResult) {
	c.Wins += r.Wins
	c.Losses += r.Losses
	c.PointsFor += r.PointsFor
	c.PointsAgainst += r.PointsAgainst
	c.Simulations++
	if g := r.Games(); g > 0 {
		c.winRates = append(c.winRates, float64(r.Wins)/float64(g))
	}
}

func (c *ConfigPerformance) Games() int {
	return c.Wins + c.Losses
}

func (c *ConfigPerformance) WinRate() float64 {
	if c.Games() == 0 {
		return 0
	}
	return float64(c.Wins) / float64(c.Games())
}

func (c *ConfigPerformance) PointsPerGame() float64 {
	if c.Games() == 0 {
		return 0
	}
	return c.PointsFor / float64(c.Games())
}

// Consistency is the population standard deviation of per-simulation win
// rates. Lower is steadier.
func (c *ConfigPerformance) Consistency() float64 {
	if len(c.winRates) == 0 {
		return 0
	}
	mean := 0.0
	for _, r := range c.winRates {
		mean += r
	}
	mean /= float64(len(c.winRates))
	v := 0.0
	for _, r := range c.winRates {
		v += (r - mean) * (r - mean)
	}
	return math.Sqrt(v / float64(len(c.winRates)))
}

// IsBetterThan ranks by win rate, then points per game. A result with no
// games never wins.
func (c *ConfigPerformance) IsBetterThan(other *ConfigPerformance) bool {
	if c.Games() == 0 {
		return false
	}
	if other == nil || other.Games() == 0 {
		return true
	}
	if c.WinRate() != other.WinRate() {
		return c.WinRate() > other.WinRate()
	}
	return c.PointsPerGame() > other.PointsPerGame()
}

// Metrics is the block embedded into saved configs.
func (c *ConfigPerformance) Metrics() *params.PerformanceMetrics {
	return &params.PerformanceMetrics{
		Wins:          c.Wins,
		Losses:        c.Losses,
		WinRate:       c.WinRate(),
		PointsPerGame: c.PointsPerGame(),
		Simulations:   c.Simulations,
		ConfigID:      c.ID,
		Timestamp:     c.EvaluatedAt.Format(time.RFC3339),
	}
}
