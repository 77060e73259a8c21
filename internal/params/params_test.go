package params

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdTiers(t *testing.T) {
	tests := []struct {
		name string
		th   Thresholds
		v    float64
		want Tier
	}{
		{"increasing excellent", Thresholds{0, Increasing, 10}, 40, Excellent},
		{"increasing good", Thresholds{0, Increasing, 10}, 35, Good},
		{"increasing neutral", Thresholds{0, Increasing, 10}, 25, Neutral},
		{"increasing poor", Thresholds{0, Increasing, 10}, 20, Poor},
		{"increasing very poor", Thresholds{0, Increasing, 10}, 5, VeryPoor},
		{"decreasing excellent", Thresholds{0, Decreasing, 37.5}, 12, Excellent},
		{"decreasing good", Thresholds{0, Decreasing, 37.5}, 60, Good},
		{"decreasing neutral", Thresholds{0, Decreasing, 37.5}, 100, Neutral},
		{"decreasing poor", Thresholds{0, Decreasing, 37.5}, 120, Poor},
		{"decreasing very poor", Thresholds{0, Decreasing, 37.5}, 999, VeryPoor},
		{"bi hi excellent", Thresholds{1, BiExcellentHi, 0.1}, 1.25, Excellent},
		{"bi hi poor", Thresholds{1, BiExcellentHi, 0.1}, 0.85, Poor},
		{"bi hi neutral", Thresholds{1, BiExcellentHi, 0.1}, 1.05, Neutral},
		{"bi lo excellent", Thresholds{1, BiExcellentLo, 0.1}, 0.75, Excellent},
		{"bi lo very poor", Thresholds{1, BiExcellentLo, 0.1}, 1.3, VeryPoor},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.th.Tier(tc.v))
		})
	}
}

func TestBlockMultiplierAppliesWeight(t *testing.T) {
	b := block(1.2, 1.1, 0.9, 0.8, 0, Increasing, 10)
	assert.InDelta(t, 1.2, b.Multiplier(50), 1e-9)
	assert.InDelta(t, 1.0, b.Multiplier(25), 1e-9)

	b.Weight = 2
	assert.InDelta(t, 1.44, b.Multiplier(50), 1e-9)

	b.Weight = 0
	assert.InDelta(t, 1.0, b.Multiplier(50), 1e-9)
}

func TestScoringParametersRequireEveryBlock(t *testing.T) {
	p := DefaultScoringParameters()
	b, err := json.Marshal(p)
	require.NoError(t, err)

	var round ScoringParameters
	require.NoError(t, json.Unmarshal(b, &round))
	assert.Equal(t, p, round)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	delete(raw, "MATCHUP_SCORING")
	b, err = json.Marshal(raw)
	require.NoError(t, err)

	err = json.Unmarshal(b, &round)
	require.ErrorIs(t, err, ErrMissingParameter)
	assert.Contains(t, err.Error(), "MATCHUP_SCORING")
}

func TestScoringBlockRequiresNestedFields(t *testing.T) {
	var s ScoringBlock
	err := json.Unmarshal([]byte(`{"WEIGHT":1,"MULTIPLIERS":{"EXCELLENT":1.2,"GOOD":1.1,"POOR":0.9},"THRESHOLDS":{"BASE_POSITION":0,"DIRECTION":"INCREASING","STEPS":1}}`), &s)
	require.ErrorIs(t, err, ErrMissingParameter)
	assert.Contains(t, err.Error(), "VERY_POOR")

	err = json.Unmarshal([]byte(`{"WEIGHT":1,"MULTIPLIERS":{"EXCELLENT":1.2,"GOOD":1.1,"POOR":0.9,"VERY_POOR":0.8},"THRESHOLDS":{"BASE_POSITION":0,"DIRECTION":"SIDEWAYS","STEPS":1}}`), &s)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestLeagueParametersDefaults(t *testing.T) {
	var p LeagueParameters
	require.NoError(t, json.Unmarshal([]byte(`{"MAX_POSITIONS":{"QB":1,"RB":2},"STARTING_LINEUP":{"QB":1}}`), &p))
	assert.Equal(t, DefaultHumanErrorRate, p.HumanErrorRate)
	assert.Equal(t, DefaultHumanErrorTopN, p.HumanErrorTopN)
	assert.Equal(t, DefaultConsistencyScoring(), p.Consistency)
	assert.Equal(t, 3, p.RosterSize())

	err := json.Unmarshal([]byte(`{"MAX_POSITIONS":{"QB":1},"STARTING_LINEUP":{"QB":1},"HUMAN_ERROR_RATE":1.5}`), &p)
	require.ErrorIs(t, err, ErrInvalidParameter)

	err = json.Unmarshal([]byte(`{"STARTING_LINEUP":{"QB":1}}`), &p)
	require.ErrorIs(t, err, ErrMissingParameter)
}

func TestRegistryGetSet(t *testing.T) {
	p := DefaultScoringParameters()

	v, err := p.Get("ADP_SCORING.THRESHOLDS.STEPS")
	require.NoError(t, err)
	assert.Equal(t, 37.5, v)

	require.NoError(t, p.Set("MATCHUP_SCORING.WEIGHT", 2.5))
	assert.Equal(t, 2.5, p.MatchupScoring.Weight)
	assert.Equal(t, 2.5, p.ScheduleScoring.Weight)

	_, err = p.Get("MATCHUP_SCORING.NOPE")
	assert.ErrorIs(t, err, ErrUnknownParameter)
	assert.ErrorIs(t, p.Set("NOT_A_BLOCK.WEIGHT", 1), ErrUnknownParameter)
	assert.ErrorIs(t, p.Set(NormalizationMaxScale, 0), ErrInvalidParameter)

	for _, name := range ParameterNames() {
		_, err := p.Get(name)
		assert.NoError(t, err, name)
	}
}

func TestHorizonWeeks(t *testing.T) {
	start, end := Week6To9.Weeks()
	assert.Equal(t, 6, start)
	assert.Equal(t, 9, end)
	assert.Equal(t, Week1To5, HorizonForWeek(1))
	assert.Equal(t, Week10To13, HorizonForWeek(13))
	assert.Equal(t, Week14To17, HorizonForWeek(17))
	assert.Equal(t, "week14-17.json", Week14To17.FileName())
	assert.Equal(t, DraftFile, ROS.FileName())

	_, err := ParseHorizon("week_2_3")
	assert.Error(t, err)
}

func TestBundleSaveLoad(t *testing.T) {
	dir := t.TempDir()
	b := DefaultBundle()
	c := b.Scoring[Week1To5]
	c.Parameters.MatchupScoring.Weight = 3
	c.PerformanceMetrics = &PerformanceMetrics{MAE: 4.2, PlayerCount: 120}
	b.Scoring[Week1To5] = c

	require.NoError(t, b.Save(dir))
	for _, name := range []string{LeagueFile, DraftFile, "week1-5.json", "week6-9.json", "week10-13.json", "week14-17.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	loaded, err := LoadBundle(dir)
	require.NoError(t, err)
	got := loaded.Scoring[Week1To5]
	assert.Equal(t, 3.0, got.Parameters.ScheduleScoring.Weight)
	require.NotNil(t, got.PerformanceMetrics)
	assert.Equal(t, 120, got.PerformanceMetrics.PlayerCount)
	assert.Equal(t, b.League.Parameters.MaxPositions, loaded.League.Parameters.MaxPositions)
}

func TestBundleCloneIsIndependent(t *testing.T) {
	b := DefaultBundle()
	c := b.Clone()
	c.League.Parameters.MaxPositions["QB"] = 9
	sc := c.Scoring[ROS]
	sc.Parameters.ADPScoring.Weight = 7
	c.Scoring[ROS] = sc

	assert.Equal(t, 2, b.League.Parameters.MaxPositions["QB"])
	assert.Equal(t, 1.0, b.Scoring[ROS].Parameters.ADPScoring.Weight)
}
