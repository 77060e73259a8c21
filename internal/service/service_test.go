package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/accuracy"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/historical"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/repository/memory"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/simulation"
)

var names = map[int]string{1: "Patrick Mahomes", 2: "Josh Allen", 9: "Christian McCaffrey", 21: "Tyreek Hill"}

// testSeason has 8 QBs, 12 RBs and 12 WRs with full 17-week projections and
// actuals that drift from them.
func testSeason(label string) *historical.Season {
	projected := map[int]*models.Player{}
	actual := map[int]*models.Player{}
	positions := []struct {
		pos models.Position
		n   int
	}{{models.POS_QB, 8}, {models.POS_RB, 12}, {models.POS_WR, 12}}
	id := 1
	for _, pp := range positions {
		for i := 0; i < pp.n; i++ {
			name, ok := names[id]
			if !ok {
				name = fmt.Sprintf("%s Player %d", pp.pos, id)
			}
			adp := float64(id)
			proj := &models.Player{ID: id, Name: name, Team: "KC", Position: pp.pos, ByeWeek: 6, ADP: &adp, WeekPoints: map[int]float64{}}
			act := &models.Player{ID: id, Name: name, Team: "KC", Position: pp.pos, WeekPoints: map[int]float64{}}
			for w := models.FirstWeek; w <= models.LastWeek; w++ {
				proj.WeekPoints[w] = float64(8 + id%9)
				act.WeekPoints[w] = float64(8+id%9) + float64((id+w)%7) - 3
			}
			projected[id], actual[id] = proj, act
			id++
		}
	}
	weeks := map[int]*historical.WeekSnapshot{}
	for w := models.FirstWeek; w <= models.LastWeek; w++ {
		snap := &historical.WeekSnapshot{Week: w, Projected: projected}
		if w == models.LastWeek {
			snap.Actual = actual
		}
		weeks[w] = snap
	}
	return historical.NewSeason(label, weeks, nil)
}

func smallSchema(t *testing.T) *accuracy.SweepSchema {
	t.Helper()
	s, err := accuracy.NewSweepSchema([]accuracy.ParameterValues{
		{Name: "PERFORMANCE_SCORING.WEIGHT", Values: []float64{0, 1}},
	})
	require.NoError(t, err)
	return s
}

func newService(t *testing.T) (*TuningService, *memory.Repository) {
	t.Helper()
	repo := memory.NewRepository()
	svc, err := NewTuningService([]*historical.Season{testSeason("2022"), testSeason("2023")}, params.DefaultBundle(), smallSchema(t), repo, Options{
		OutputDir: t.TempDir(),
		Workers:   2,
		Clock:     clockwork.NewFakeClockAt(time.Date(2024, 9, 3, 6, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	return svc, repo
}

func TestNewTuningServiceNeedsSeasons(t *testing.T) {
	_, err := NewTuningService(nil, params.DefaultBundle(), smallSchema(t), memory.NewRepository(), Options{})
	assert.ErrorIs(t, err, accuracy.ErrNoSeasons)
}

func TestRunSweepStoresSummary(t *testing.T) {
	svc, repo := newService(t)
	assert.Contains(t, svc.GetStatus(), "No sweep has finished yet.")

	sum, err := svc.RunSweep(context.Background(), false)
	require.NoError(t, err)
	assert.Same(t, sum, repo.GetSummary())
	assert.Equal(t, []string{"2022", "2023"}, sum.Seasons)
	assert.Equal(t, 3, sum.Evaluated)
	assert.Len(t, sum.Best, len(params.Horizons))
	assert.False(t, svc.Running())

	status := svc.GetStatus()
	assert.Contains(t, status, "Configs evaluated: 3")
	assert.Contains(t, status, "week_14_17")

	best, err := svc.GetBest("ros")
	require.NoError(t, err)
	assert.Contains(t, best, "*Best ros config*")
	assert.Contains(t, best, sum.OutputDir)

	_, err = svc.GetBest("week_18")
	assert.Error(t, err)
}

func TestRunSweepRejectsConcurrentRun(t *testing.T) {
	svc, _ := newService(t)
	svc.running.Store(true)
	_, err := svc.RunSweep(context.Background(), false)
	assert.ErrorIs(t, err, ErrSweepRunning)
	assert.Contains(t, svc.GetStatus(), "A sweep is running now.")
}

func TestGetBestBeforeAnySweep(t *testing.T) {
	svc, _ := newService(t)
	msg, err := svc.GetBest("week_1_5")
	require.NoError(t, err)
	assert.Equal(t, "No sweep has finished yet.", msg)
}

func TestFindPlayer(t *testing.T) {
	svc, _ := newService(t)
	msg, err := svc.FindPlayer("mahomes")
	require.NoError(t, err)
	assert.Contains(t, msg, "*Patrick Mahomes* (QB - KC)")
	assert.Contains(t, msg, "ADP: 1.0")
	assert.Contains(t, msg, "Bye: week 6")

	msg, err = svc.FindPlayer("Tyreek Hil")
	require.NoError(t, err)
	assert.Contains(t, msg, "Tyreek Hill")

	_, err = svc.FindPlayer("zzzzzzzzzz")
	assert.Error(t, err)
}

func TestRunLeagueTournament(t *testing.T) {
	b := params.DefaultBundle()
	b.League.Parameters.MaxPositions = map[models.Position]int{models.POS_QB: 1, models.POS_RB: 2, models.POS_WR: 2}
	b.League.Parameters.StartingLineup = map[models.Position]int{models.POS_QB: 1, models.POS_RB: 1, models.POS_WR: 1}
	b.League.Parameters.DraftOrder = nil

	clock := clockwork.NewFakeClock()
	runner := simulation.NewParallelLeagueRunner(testSeason("2023"), simulation.LeagueOptions{Teams: 4}, 2, 5, clock)
	mgr := simulation.NewSimulationManager(runner, 2)
	gen := accuracy.NewConfigGenerator(b, smallSchema(t))

	best, err := RunLeagueTournament(context.Background(), mgr, gen, 1)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Len(t, mgr.Results(), 3)
	assert.Equal(t, 2, best.Simulations)
	assert.Equal(t, 2*models.LastWeek, best.Games())
}
