// Package strategy ranks players for simulated opponents' draft picks and
// applies the week-to-week consistency adjustment to draft scores.
package strategy

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

var (
	ErrInvalidStrategy    = errors.New("invalid strategy")
	ErrNoAvailablePlayers = errors.New("no available players")
)

type Strategy string

const (
	ADPAggressive                 Strategy = "adp_aggressive"
	ProjectedPointsAggressive     Strategy = "projected_points_aggressive"
	ADPWithDraftOrder             Strategy = "adp_with_draft_order"
	ProjectedPointsWithDraftOrder Strategy = "projected_points_with_draft_order"
)

// Strategies lists every opponent strategy.
var Strategies = []Strategy{ADPAggressive, ProjectedPointsAggressive, ADPWithDraftOrder, ProjectedPointsWithDraftOrder}

func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of %v)", ErrInvalidStrategy, s, Strategies)
}

func (s Strategy) usesADP() bool {
	return s == ADPAggressive || s == ADPWithDraftOrder
}

func (s Strategy) usesDraftOrder() bool {
	return s == ADPWithDraftOrder || s == ProjectedPointsWithDraftOrder
}

// RandomSource is the subset of *rand.Rand the human-error draw needs.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

type Manager struct {
	strategy Strategy
	league   params.LeagueParameters
	rng      RandomSource
}

// NewManager validates strategy and returns a manager drawing from rng. A nil
// rng is replaced by a time-seeded source.
func NewManager(strategy string, league params.LeagueParameters, rng RandomSource) (*Manager, error) {
	st, err := ParseStrategy(strategy)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Manager{strategy: st, league: league, rng: rng}, nil
}

func (m *Manager) Strategy() Strategy {
	return m.strategy
}

// Ranked is a candidate with the score the strategy sorted it by.
type Ranked struct {
	Player *models.Player
	Score  float64
}

// Rank orders available players best first for the given draft round
// (0-based). ADP strategies score MissingADP minus ADP so players without an
// ADP land last; points strategies score summed projected points.
func (m *Manager) Rank(available []*models.Player, round int) []Ranked {
	out := make([]Ranked, 0, len(available))
	for _, p := range available {
		var score float64
		if m.strategy.usesADP() {
			score = models.MissingADP - p.ADPOrDefault()
		} else {
			score = p.SeasonPoints()
		}
		if m.strategy.usesDraftOrder() {
			score += m.DraftOrderBonus(p, round)
		}
		out = append(out, Ranked{Player: p, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Player.ID < out[j].Player.ID
	})
	return out
}

// DraftOrderBonus returns the PRIMARY bonus when the player's position is the
// round's primary target, the SECONDARY bonus for a secondary target, else 0.
func (m *Manager) DraftOrderBonus(p *models.Player, round int) float64 {
	return DraftOrderBonus(m.league, p, round)
}

func DraftOrderBonus(league params.LeagueParameters, p *models.Player, round int) float64 {
	if round < 0 || round >= len(league.DraftOrder) {
		return 0
	}
	bonus := 0.0
	for pos, mark := range league.DraftOrder[round] {
		if !p.Position.Matches(pos) {
			continue
		}
		switch mark {
		case params.PrimaryMark:
			return league.DraftOrderBonuses.Primary
		case params.SecondaryMark:
			bonus = league.DraftOrderBonuses.Secondary
		}
	}
	return bonus
}

// GetDraftRecommendation picks the next player. With probability
// HUMAN_ERROR_RATE the pick is drawn uniformly from the top HUMAN_ERROR_TOP_N
// ranked players instead of the best one.
func (m *Manager) GetDraftRecommendation(available []*models.Player, round int) (*models.Player, error) {
	if len(available) == 0 {
		return nil, ErrNoAvailablePlayers
	}
	ranked := m.Rank(available, round)
	if m.rng.Float64() < m.league.HumanErrorRate {
		n := min(m.league.HumanErrorTopN, len(ranked))
		pick := ranked[m.rng.Intn(n)].Player
		slog.Debug("Human error pick", "strategy", m.strategy, "player", pick.Name)
		return pick, nil
	}
	return ranked[0].Player, nil
}
