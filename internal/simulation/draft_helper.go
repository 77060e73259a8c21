package simulation

import (
	"fmt"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/players"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/scoring"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/strategy"
)

// DraftHelperTeam drafts and sets lineups with the scoring engine configured
// by the bundle under evaluation.
type DraftHelperTeam struct {
	name        string
	league      params.LeagueParameters
	season      SeasonData
	draftEngine *scoring.Engine
	weekEngines map[params.Horizon]*scoring.Engine
	projected   *players.Manager
	actual      *players.Manager
	roster      []*models.Player
	slots       *rosterSlots
}

func NewDraftHelperTeam(name string, bundle *params.Bundle, season SeasonData, projected, actual *players.Manager) *DraftHelperTeam {
	t := &DraftHelperTeam{
		name:        name,
		league:      bundle.League.Parameters,
		season:      season,
		draftEngine: scoring.NewEngine(bundle.Scoring[params.ROS].Parameters, season, nil),
		weekEngines: make(map[params.Horizon]*scoring.Engine, len(params.Horizons)-1),
		projected:   projected,
		actual:      actual,
		slots:       newRosterSlots(bundle.League.Parameters),
	}
	for _, h := range params.Horizons {
		if h.IsWeekly() {
			t.weekEngines[h] = scoring.NewEngine(bundle.Scoring[h].Parameters, season, actual)
		}
	}
	return t
}

func (t *DraftHelperTeam) Name() string {
	return t.name
}

func (t *DraftHelperTeam) Roster() []*models.Player {
	return append([]*models.Player(nil), t.roster...)
}

// DraftScore is the engine's normalised draft score with the consistency
// multiplier and this round's draft-order bonus applied.
func (t *DraftHelperTeam) DraftScore(p *models.Player, maxProjection float64, round int) float64 {
	score := t.draftEngine.DraftScore(p, maxProjection)
	score = strategy.ApplyConsistencyMultiplier(t.league.Consistency, score, p, models.LastWeek+1)
	return score + strategy.DraftOrderBonus(t.league, p, round)
}

func (t *DraftHelperTeam) MakePick(round int) (*models.Player, error) {
	avail := t.slots.eligible(t.projected.Available())
	if len(avail) == 0 {
		return nil, fmt.Errorf("%s: %w", t.name, strategy.ErrNoAvailablePlayers)
	}
	maxProj := t.draftEngine.MaxSeasonProjection(avail)
	var best *models.Player
	bestScore := 0.0
	for _, p := range avail {
		s := t.DraftScore(p, maxProj, round)
		if best == nil || s > bestScore || (s == bestScore && p.ID < best.ID) {
			best, bestScore = p, s
		}
	}
	if err := markDrafted(t.projected, t.actual, best.ID, models.OnUserTeam); err != nil {
		return nil, err
	}
	t.roster = append(t.roster, best)
	t.slots.add(best.Position)
	return best, nil
}

func (t *DraftHelperTeam) MarkPlayerDrafted(id int) error {
	return markDrafted(t.projected, t.actual, id, models.DraftedByOpponent)
}

// SetWeeklyLineup starts the players with the best engine-adjusted projection
// for week and returns their actual points.
func (t *DraftHelperTeam) SetWeeklyLineup(week int) float64 {
	engine := t.weekEngines[params.HorizonForWeek(week)]
	lineup := scoring.OptimalLineup(t.roster, t.league.StartingLineup, func(p *models.Player) float64 {
		sp, ok := t.season.ProjectedPlayer(p.ID, week)
		if !ok {
			return 0
		}
		return engine.WeekProjection(sp, week)
	})
	return realizedPoints(t.actual, lineup, week)
}
