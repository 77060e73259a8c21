package simulation

import (
	"errors"
	"fmt"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
)

var (
	ErrInvalidWeek    = errors.New("week must be between 1 and 17")
	ErrTeamDidNotPlay = errors.New("team did not play this week")
	ErrDuplicateTeam  = errors.New("team scheduled twice in one week")
)

// Team is anything that can field a weekly lineup.
type Team interface {
	Name() string
	// SetWeeklyLineup picks starters for week and returns the actual points
	// they scored.
	SetWeeklyLineup(week int) float64
}

// Matchup pairs two teams for one week.
type Matchup struct {
	Home Team
	Away Team
}

type WeekResult struct {
	Team          Team
	PointsScored  float64
	PointsAgainst float64
	Won           bool
}

// Week holds one week's matchups and, once simulated, their results.
type Week struct {
	number   int
	matchups []Matchup
	results  map[Team]WeekResult
}

func NewWeek(number int, matchups []Matchup) (*Week, error) {
	if number < models.FirstWeek || number > models.LastWeek {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWeek, number)
	}
	seen := make(map[Team]bool, 2*len(matchups))
	for _, m := range matchups {
		for _, t := range []Team{m.Home, m.Away} {
			if seen[t] {
				return nil, fmt.Errorf("week %d: %w: %s", number, ErrDuplicateTeam, t.Name())
			}
			seen[t] = true
		}
	}
	return &Week{number: number, matchups: append([]Matchup(nil), matchups...)}, nil
}

func (w *Week) Number() int {
	return w.number
}

// SimulateWeek has every team set its lineup and scores each matchup.
// Results from a previous call are replaced. On an exact tie both teams lose.
func (w *Week) SimulateWeek() {
	w.results = make(map[Team]WeekResult, 2*len(w.matchups))
	for _, m := range w.matchups {
		home := m.Home.SetWeeklyLineup(w.number)
		away := m.Away.SetWeeklyLineup(w.number)
		w.results[m.Home] = WeekResult{Team: m.Home, PointsScored: home, PointsAgainst: away, Won: home > away}
		w.results[m.Away] = WeekResult{Team: m.Away, PointsScored: away, PointsAgainst: home, Won: away > home}
	}
}

func (w *Week) GetResult(t Team) (WeekResult, error) {
	r, ok := w.results[t]
	if !ok {
		return WeekResult{}, fmt.Errorf("%s week %d: %w", t.Name(), w.number, ErrTeamDidNotPlay)
	}
	return r, nil
}

// GetAllResults returns results in matchup order, home team first.
func (w *Week) GetAllResults() []WeekResult {
	out := make([]WeekResult, 0, len(w.results))
	for _, m := range w.matchups {
		for _, t := range []Team{m.Home, m.Away} {
			if r, ok := w.results[t]; ok {
				out = append(out, r)
			}
		}
	}
	return out
}

func (w *Week) GetMatchups() []Matchup {
	return append([]Matchup(nil), w.matchups...)
}
