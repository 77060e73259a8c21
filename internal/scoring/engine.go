// Package scoring turns raw projections into configuration-adjusted
// projections and draft scores, and picks weekly lineups.
package scoring

import (
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/players"
)

// TeamSource answers NFL team rankings and opponents by week.
type TeamSource interface {
	TeamData(week int, team string) (models.TeamData, bool)
}

type Engine struct {
	params  params.ScoringParameters
	teams   TeamSource
	history players.ProjectionSource
}

// NewEngine builds an engine. teams and history may be nil; the matching
// multipliers are then skipped.
func NewEngine(p params.ScoringParameters, teams TeamSource, history players.ProjectionSource) *Engine {
	return &Engine{params: p, teams: teams, history: history}
}

func (e *Engine) Parameters() params.ScoringParameters {
	return e.params
}

// WeekProjection adjusts a player's raw projection for week by player rating,
// team quality, opponent defence and recent performance. A week without a
// raw projection scores zero.
func (e *Engine) WeekProjection(p *models.Player, week int) float64 {
	base, ok := p.PointsForWeek(week)
	if !ok || base <= 0 {
		return 0
	}
	mult := e.ratingMultiplier(p) * e.teamQualityMultiplier(p, week)
	if td, ok := e.teamData(week, p.Team); ok && !td.OnBye() {
		if opp, ok := e.teamData(week, td.Opponent); ok && opp.DefensiveRank > 0 {
			mult *= e.params.MatchupScoring.Multiplier(float64(opp.DefensiveRank))
		}
	}
	mult *= e.performanceMultiplier(p, week)
	return base * mult
}

// SeasonProjection adjusts a player's raw projections for weeks fromWeek..17
// by player rating, team quality and remaining schedule strength.
func (e *Engine) SeasonProjection(p *models.Player, fromWeek int) float64 {
	total := 0.0
	for w := fromWeek; w <= models.LastWeek; w++ {
		total += p.WeekPoints[w]
	}
	if len(p.WeekPoints) == 0 && fromWeek <= models.FirstWeek {
		total = p.FantasyPoints
	}
	if total <= 0 {
		return 0
	}
	return total * e.ratingMultiplier(p) * e.teamQualityMultiplier(p, fromWeek) * e.scheduleMultiplier(p, fromWeek)
}

// DraftScore scales a player's season projection onto
// [0, NORMALIZATION_MAX_SCALE] against maxProjection and applies the ADP
// multiplier on top.
func (e *Engine) DraftScore(p *models.Player, maxProjection float64) float64 {
	proj := e.SeasonProjection(p, models.FirstWeek)
	if maxProjection <= 0 || proj <= 0 {
		return 0
	}
	normalized := proj / maxProjection * e.params.NormalizationMaxScale
	return normalized * e.params.ADPScoring.Multiplier(p.ADPOrDefault())
}

// MaxSeasonProjection is the largest SeasonProjection in ps.
func (e *Engine) MaxSeasonProjection(ps []*models.Player) float64 {
	best := 0.0
	for _, p := range ps {
		if v := e.SeasonProjection(p, models.FirstWeek); v > best {
			best = v
		}
	}
	return best
}

func (e *Engine) teamData(week int, team string) (models.TeamData, bool) {
	if e.teams == nil || team == "" {
		return models.TeamData{}, false
	}
	return e.teams.TeamData(week, team)
}

func (e *Engine) ratingMultiplier(p *models.Player) float64 {
	if p.PlayerRating == nil {
		return 1.0
	}
	return e.params.PlayerRatingScoring.Multiplier(*p.PlayerRating)
}

func (e *Engine) teamQualityMultiplier(p *models.Player, week int) float64 {
	td, ok := e.teamData(week, p.Team)
	if !ok || td.OffensiveRank <= 0 {
		return 1.0
	}
	return e.params.TeamQualityScoring.Multiplier(float64(td.OffensiveRank))
}

// scheduleMultiplier rates the average defensive rank of the opponents a
// player's team faces from fromWeek on.
func (e *Engine) scheduleMultiplier(p *models.Player, fromWeek int) float64 {
	sum, n := 0, 0
	for w := fromWeek; w <= models.LastWeek; w++ {
		td, ok := e.teamData(w, p.Team)
		if !ok || td.OnBye() {
			continue
		}
		opp, ok := e.teamData(w, td.Opponent)
		if !ok || opp.DefensiveRank <= 0 {
			continue
		}
		sum += opp.DefensiveRank
		n++
	}
	if n == 0 {
		return 1.0
	}
	return e.params.ScheduleScoring.Multiplier(float64(sum) / float64(n))
}

// performanceMultiplier rates actual-over-projected points for the weeks
// before week. Players with no scored history are left unadjusted.
func (e *Engine) performanceMultiplier(p *models.Player, week int) float64 {
	if e.history == nil {
		return 1.0
	}
	var actual, projected float64
	for w := models.FirstWeek; w < week; w++ {
		proj, ok := p.PointsForWeek(w)
		if !ok || proj <= 0 {
			continue
		}
		act, ok := e.history.Points(p.ID, w)
		if !ok {
			continue
		}
		actual += act
		projected += proj
	}
	if projected <= 0 {
		return 1.0
	}
	return e.params.PerformanceScoring.Multiplier(actual / projected)
}
