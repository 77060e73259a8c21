package simulation

import (
	"errors"
	"fmt"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/players"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/scoring"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/strategy"
)

// SimulatedOpponent is an AI-drafted team. It keeps its own projected and
// actual player views; both must see every pick made in the league.
type SimulatedOpponent struct {
	name      string
	strategy  *strategy.Manager
	league    params.LeagueParameters
	season    SeasonData
	projected *players.Manager
	actual    *players.Manager
	roster    []*models.Player
	slots     *rosterSlots
}

func NewSimulatedOpponent(name string, st *strategy.Manager, league params.LeagueParameters, season SeasonData, projected, actual *players.Manager) *SimulatedOpponent {
	return &SimulatedOpponent{
		name:      name,
		strategy:  st,
		league:    league,
		season:    season,
		projected: projected,
		actual:    actual,
		slots:     newRosterSlots(league),
	}
}

func (o *SimulatedOpponent) Name() string {
	return o.name
}

func (o *SimulatedOpponent) Strategy() strategy.Strategy {
	return o.strategy.Strategy()
}

// Roster returns a copy of the drafted players.
func (o *SimulatedOpponent) Roster() []*models.Player {
	return append([]*models.Player(nil), o.roster...)
}

// MakePick asks the strategy for the best player at an open position and
// drafts them.
func (o *SimulatedOpponent) MakePick(round int) (*models.Player, error) {
	avail := o.slots.eligible(o.projected.Available())
	p, err := o.strategy.GetDraftRecommendation(avail, round)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.name, err)
	}
	if err := o.DraftPlayer(p); err != nil {
		return nil, err
	}
	return p, nil
}

// DraftPlayer adds p to this roster and marks them drafted in both views.
func (o *SimulatedOpponent) DraftPlayer(p *models.Player) error {
	if err := o.MarkPlayerDrafted(p.ID); err != nil {
		return err
	}
	o.roster = append(o.roster, p)
	o.slots.add(p.Position)
	return nil
}

// MarkPlayerDrafted records that another team took id.
func (o *SimulatedOpponent) MarkPlayerDrafted(id int) error {
	return markDrafted(o.projected, o.actual, id, models.DraftedByOpponent)
}

// SetWeeklyLineup starts the players with the highest raw projection for
// week and returns their actual points.
func (o *SimulatedOpponent) SetWeeklyLineup(week int) float64 {
	lineup := scoring.OptimalLineup(o.roster, o.league.StartingLineup, func(p *models.Player) float64 {
		sp, ok := o.season.ProjectedPlayer(p.ID, week)
		if !ok {
			return 0
		}
		pts, _ := sp.PointsForWeek(week)
		return pts
	})
	return realizedPoints(o.actual, lineup, week)
}

func markDrafted(projected, actual *players.Manager, id int, state models.DraftedState) error {
	if err := projected.SetDrafted(id, state); err != nil {
		return err
	}
	// Players without any recorded stats are absent from the actual view.
	if err := actual.SetDrafted(id, state); err != nil && !errors.Is(err, players.ErrUnknownPlayer) {
		return err
	}
	return nil
}

func realizedPoints(actual *players.Manager, lineup []*models.Player, week int) float64 {
	total := 0.0
	for _, p := range lineup {
		if pts, ok := actual.Points(p.ID, week); ok {
			total += pts
		}
	}
	return total
}
