// Package simulation replays a historical season as a fantasy league: a
// snake draft between the configuration under test and AI opponents,
// followed by 17 weeks of head-to-head matchups scored on actual points.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/players"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/strategy"
)

const (
	DefaultLeagueTeams = 10
	HelperTeamName     = "Draft Helper"
)

var ErrLeagueTooSmall = errors.New("league needs at least two teams")

// SeasonData is the read-only historical season a league replays. It is
// shared between concurrently running leagues.
type SeasonData interface {
	DraftPool() []*models.Player
	ActualPool() []*models.Player
	ProjectedPlayer(id, week int) (*models.Player, bool)
	TeamData(week int, team string) (models.TeamData, bool)
}

type LeagueOptions struct {
	Teams int
	// DraftPosition is the helper's 1-based draft slot; 0 picks one at random.
	DraftPosition int
}

// LeagueResult is the helper team's record over one simulated season.
type LeagueResult struct {
	Wins          int
	Losses        int
	PointsFor     float64
	PointsAgainst float64
	DraftPosition int
	Roster        []*models.Player
}

func (r *LeagueResult) Games() int {
	return r.Wins + r.Losses
}

// drafter is a team that takes part in the draft.
type drafter interface {
	Team
	MakePick(round int) (*models.Player, error)
	MarkPlayerDrafted(id int) error
}

// LeagueSimulation is one league built around a single configuration bundle.
type LeagueSimulation struct {
	bundle *params.Bundle
	season SeasonData
	opts   LeagueOptions
	rng    *rand.Rand

	helper *DraftHelperTeam
	order  []drafter
	weeks  []*Week
}

// NewLeagueSimulation seats the helper and opponents in draft order. Every
// team gets its own copy of the player pool.
func NewLeagueSimulation(bundle *params.Bundle, season SeasonData, opts LeagueOptions, rng *rand.Rand) (*LeagueSimulation, error) {
	if opts.Teams == 0 {
		opts.Teams = DefaultLeagueTeams
	}
	if opts.Teams < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrLeagueTooSmall, opts.Teams)
	}
	if opts.DraftPosition < 0 || opts.DraftPosition > opts.Teams {
		return nil, fmt.Errorf("draft position %d outside 1..%d", opts.DraftPosition, opts.Teams)
	}
	if opts.DraftPosition == 0 {
		opts.DraftPosition = rng.Intn(opts.Teams) + 1
	}

	projected := players.NewManager(season.DraftPool())
	actual := players.NewManager(season.ActualPool())
	league := bundle.League.Parameters

	s := &LeagueSimulation{bundle: bundle, season: season, opts: opts, rng: rng}
	s.helper = NewDraftHelperTeam(HelperTeamName, bundle, season, projected.Clone(), actual.Clone())

	offset := rng.Intn(len(strategy.Strategies))
	for i := 0; i < opts.Teams-1; i++ {
		st := strategy.Strategies[(offset+i)%len(strategy.Strategies)]
		mgr, err := strategy.NewManager(string(st), league, rng)
		if err != nil {
			return nil, err
		}
		opp := NewSimulatedOpponent(fmt.Sprintf("Team %d (%s)", i+1, st), mgr, league, season, projected.Clone(), actual.Clone())
		s.order = append(s.order, opp)
	}
	pos := opts.DraftPosition - 1
	s.order = append(s.order[:pos], append([]drafter{s.helper}, s.order[pos:]...)...)
	return s, nil
}

func (s *LeagueSimulation) Helper() *DraftHelperTeam {
	return s.helper
}

// Teams returns every team in draft order.
func (s *LeagueSimulation) Teams() []Team {
	out := make([]Team, len(s.order))
	for i, d := range s.order {
		out[i] = d
	}
	return out
}

// RunDraft runs a snake draft until every roster is full. Each pick is
// broadcast to the other teams' player views.
func (s *LeagueSimulation) RunDraft(ctx context.Context) error {
	rounds := s.bundle.League.Parameters.RosterSize()
	for round := 0; round < rounds; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range s.order {
			idx := i
			if round%2 == 1 {
				idx = len(s.order) - 1 - i
			}
			team := s.order[idx]
			p, err := team.MakePick(round)
			if err != nil {
				return fmt.Errorf("draft round %d: %w", round+1, err)
			}
			for j, other := range s.order {
				if j == idx {
					continue
				}
				if err := other.MarkPlayerDrafted(p.ID); err != nil {
					return fmt.Errorf("draft round %d: %s: %w", round+1, other.Name(), err)
				}
			}
		}
	}
	return nil
}

// RunSeason plays weeks 1..17 in order and tallies the helper's record.
func (s *LeagueSimulation) RunSeason(ctx context.Context) (*LeagueResult, error) {
	schedule := GenerateSchedule(s.Teams(), models.LastWeek, s.rng)
	res := &LeagueResult{DraftPosition: s.opts.DraftPosition, Roster: s.helper.Roster()}
	s.weeks = s.weeks[:0]
	for i, matchups := range schedule {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		week, err := NewWeek(i+1, matchups)
		if err != nil {
			return nil, err
		}
		week.SimulateWeek()
		s.weeks = append(s.weeks, week)

		r, err := week.GetResult(s.helper)
		if errors.Is(err, ErrTeamDidNotPlay) {
			continue
		} else if err != nil {
			return nil, err
		}
		if r.Won {
			res.Wins++
		} else {
			res.Losses++
		}
		res.PointsFor += r.PointsScored
		res.PointsAgainst += r.PointsAgainst
	}
	return res, nil
}

// Weeks returns the simulated weeks from the last RunSeason.
func (s *LeagueSimulation) Weeks() []*Week {
	return append([]*Week(nil), s.weeks...)
}

// Run drafts and plays one full season.
func (s *LeagueSimulation) Run(ctx context.Context) (*LeagueResult, error) {
	if err := s.RunDraft(ctx); err != nil {
		return nil, err
	}
	res, err := s.RunSeason(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("League finished", "wins", res.Wins, "losses", res.Losses, "draft_position", res.DraftPosition)
	return res, nil
}
