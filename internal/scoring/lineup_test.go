package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
)

func TestOptimalLineup(t *testing.T) {
	roster := []*models.Player{
		{ID: 1, Position: models.POS_QB, FantasyPoints: 20},
		{ID: 2, Position: models.POS_QB, FantasyPoints: 25},
		{ID: 3, Position: models.POS_RB, FantasyPoints: 15},
		{ID: 4, Position: models.POS_RB, FantasyPoints: 12},
		{ID: 5, Position: models.POS_RB, FantasyPoints: 11},
		{ID: 6, Position: models.POS_WR, FantasyPoints: 14},
		{ID: 7, Position: models.POS_WR, FantasyPoints: 3},
		{ID: 8, Position: models.POS_TE, FantasyPoints: 9},
		{ID: 9, Position: models.POS_K, FantasyPoints: 8},
	}
	slots := map[models.Position]int{
		models.POS_QB: 1, models.POS_RB: 2, models.POS_WR: 1, models.POS_TE: 1,
		models.POS_FLEX: 1, models.POS_K: 1, models.POS_DST: 1,
	}
	lineup := OptimalLineup(roster, slots, func(p *models.Player) float64 { return p.FantasyPoints })

	ids := []int{}
	for _, p := range lineup {
		ids = append(ids, p.ID)
	}
	// QB 2, RB 3 and 4, WR 6, TE 8, K 9, FLEX takes RB 5 over WR 7; no DST on the roster.
	assert.Equal(t, []int{2, 3, 4, 6, 8, 9, 5}, ids)
}

func TestOptimalLineupTieBreaksOnID(t *testing.T) {
	roster := []*models.Player{
		{ID: 9, Position: models.POS_WR},
		{ID: 4, Position: models.POS_WR},
	}
	lineup := OptimalLineup(roster, map[models.Position]int{models.POS_WR: 1}, func(*models.Player) float64 { return 5 })
	assert.Len(t, lineup, 1)
	assert.Equal(t, 4, lineup[0].ID)
}
