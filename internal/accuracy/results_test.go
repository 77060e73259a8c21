package accuracy

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

var sweepStart = time.Date(2024, 9, 3, 6, 0, 0, 0, time.UTC)

func newResults(t *testing.T) (*AccuracyResultsManager, clockwork.FakeClock, string) {
	t.Helper()
	dir := t.TempDir()
	clock := clockwork.NewFakeClockAt(sweepStart)
	return NewAccuracyResultsManager(params.DefaultBundle(), dir, clock), clock, dir
}

func TestAddResultTracksBestPerHorizon(t *testing.T) {
	m, _, _ := newResults(t)
	cfg := params.DefaultBundle().Scoring[params.ROS]

	_, better := m.AddResult(params.ROS, cfg, AccuracyResult{}, nil)
	assert.False(t, better, "zero-player result is never best")
	_, ok := m.Best(params.ROS)
	assert.False(t, ok)

	_, better = m.AddResult(params.ROS, cfg, AccuracyResult{MAE: 5, PlayerCount: 10, TotalError: 50}, nil)
	assert.True(t, better)
	_, better = m.AddResult(params.ROS, cfg, AccuracyResult{MAE: 5, PlayerCount: 12, TotalError: 60}, nil)
	assert.False(t, better)
	_, better = m.AddResult(params.ROS, cfg, AccuracyResult{MAE: 4, PlayerCount: 12, TotalError: 48}, nil)
	assert.True(t, better)

	best, ok := m.Best(params.ROS)
	require.True(t, ok)
	assert.Equal(t, 4.0, best.MAE())
	assert.Len(t, m.History(params.ROS), 4)
	assert.Empty(t, m.History(params.Week1To5))
}

func TestSaveOptimalConfigsCopiesBaselineAndSyncsSchedule(t *testing.T) {
	m, _, dir := newResults(t)
	cfg := params.DefaultBundle().Scoring[params.Week6To9]
	cfg.ConfigName = "tuned"
	cfg.Parameters.MatchupScoring.Weight = 2.5
	m.AddResult(params.Week6To9, cfg, AccuracyResult{MAE: 3, PlayerCount: 40, TotalError: 120}, []string{"2023"})

	out, err := m.SaveOptimalConfigs()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "optimal_2024-09-03_06-00-00"), out)

	b, err := params.LoadBundle(out)
	require.NoError(t, err)
	tuned := b.Scoring[params.Week6To9]
	assert.Equal(t, "tuned", tuned.ConfigName)
	require.NotNil(t, tuned.PerformanceMetrics)
	assert.Equal(t, 40, tuned.PerformanceMetrics.PlayerCount)
	assert.Equal(t, 2.5, tuned.Parameters.ScheduleScoring.Weight)

	base := b.Scoring[params.Week1To5]
	assert.Equal(t, "baseline_week_1_5", base.ConfigName)
	assert.Nil(t, base.PerformanceMetrics)
}

func TestIntermediateCheckpoints(t *testing.T) {
	m, clock, dir := newResults(t)
	_, _, err := LatestCheckpoint(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrNoCheckpoint)
	_, _, err = LatestCheckpoint(dir)
	assert.ErrorIs(t, err, ErrNoCheckpoint)

	first, err := m.SaveIntermediateResults(1, 0, "ADP_SCORING.WEIGHT", []string{"2023"})
	require.NoError(t, err)
	clock.Advance(time.Minute)
	second, err := m.SaveIntermediateResults(1, 1, "MATCHUP_SCORING.WEIGHT", []string{"2023"})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	got, meta, err := LatestCheckpoint(dir)
	require.NoError(t, err)
	assert.Equal(t, second, got)
	assert.Equal(t, 1, meta.Round)
	assert.Equal(t, 1, meta.ParameterIndex)
	assert.Equal(t, "MATCHUP_SCORING.WEIGHT", meta.Parameter)
	assert.Equal(t, []string{"2023"}, meta.Seasons)
}

func TestLatestCheckpointWithinSameSecond(t *testing.T) {
	m, clock, dir := newResults(t)
	_, err := m.SaveIntermediateResults(2, 3, "ADP_SCORING.WEIGHT", nil)
	require.NoError(t, err)
	clock.Advance(400 * time.Millisecond)
	newer, err := m.SaveIntermediateResults(1, 0, "MATCHUP_SCORING.WEIGHT", nil)
	require.NoError(t, err)

	got, meta, err := LatestCheckpoint(dir)
	require.NoError(t, err)
	assert.Equal(t, newer, got)
	assert.Equal(t, 1, meta.Round)
	assert.Equal(t, 0, meta.ParameterIndex)
}

func TestSeedInstallsEmbeddedIncumbents(t *testing.T) {
	m, _, _ := newResults(t)
	b := params.DefaultBundle()
	ros := b.Scoring[params.ROS]
	ros.PerformanceMetrics = &params.PerformanceMetrics{MAE: 3, PlayerCount: 50, TotalError: 150, ConfigID: "abc"}
	b.Scoring[params.ROS] = ros
	m.Seed(b, nil)

	best, ok := m.Best(params.ROS)
	require.True(t, ok)
	assert.Equal(t, "abc", best.ID)
	assert.Nil(t, best.Config.PerformanceMetrics)
	_, ok = m.Best(params.Week1To5)
	assert.False(t, ok)

	_, better := m.AddResult(params.ROS, ros, AccuracyResult{MAE: 3.5, PlayerCount: 50, TotalError: 175}, nil)
	assert.False(t, better)
}
