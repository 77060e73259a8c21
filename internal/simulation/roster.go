package simulation

import (
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

// rosterSlots tracks how many players of each position a team holds against
// MAX_POSITIONS. RB/WR/TE overflow goes into the FLEX allowance.
type rosterSlots struct {
	max    map[models.Position]int
	counts map[models.Position]int
	flex   int
}

func newRosterSlots(league params.LeagueParameters) *rosterSlots {
	return &rosterSlots{max: league.MaxPositions, counts: make(map[models.Position]int)}
}

func (r *rosterSlots) canAdd(pos models.Position) bool {
	if r.counts[pos] < r.max[pos] {
		return true
	}
	return pos.FlexEligible() && r.flex < r.max[models.POS_FLEX]
}

func (r *rosterSlots) add(pos models.Position) {
	if r.counts[pos] < r.max[pos] {
		r.counts[pos]++
		return
	}
	if pos.FlexEligible() {
		r.flex++
	}
}

func (r *rosterSlots) eligible(ps []*models.Player) []*models.Player {
	var out []*models.Player
	for _, p := range ps {
		if r.canAdd(p.Position) {
			out = append(out, p)
		}
	}
	return out
}
