package scoring

import (
	"sort"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
)

// slotOrder fills fixed positions before FLEX so FLEX takes the best leftover.
var slotOrder = []models.Position{
	models.POS_QB, models.POS_RB, models.POS_WR, models.POS_TE, models.POS_K, models.POS_DST, models.POS_FLEX,
}

// OptimalLineup picks starters for slots from roster, highest score first.
// Ties break on player id so the lineup is deterministic.
func OptimalLineup(roster []*models.Player, slots map[models.Position]int, score func(*models.Player) float64) []*models.Player {
	type cand struct {
		p     *models.Player
		score float64
	}
	cands := make([]cand, 0, len(roster))
	for _, p := range roster {
		cands = append(cands, cand{p, score(p)})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].p.ID < cands[j].p.ID
	})

	used := make(map[int]bool, len(roster))
	var lineup []*models.Player
	for _, slot := range slotOrder {
		need := slots[slot]
		for _, c := range cands {
			if need == 0 {
				break
			}
			if used[c.p.ID] || !c.p.Position.Matches(slot) {
				continue
			}
			used[c.p.ID] = true
			lineup = append(lineup, c.p)
			need--
		}
	}
	return lineup
}
