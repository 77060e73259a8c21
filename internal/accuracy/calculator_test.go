package accuracy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMAE(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		mae     float64
		count   int
	}{
		{"empty", nil, 0, 0},
		{"all filtered", []Sample{{Projected: 10, Actual: 0}, {Projected: 5, Actual: -2}}, 0, 0},
		{"mixed", []Sample{{Projected: 10, Actual: 12}, {Projected: 8, Actual: 0}, {Projected: 20, Actual: 14}}, 4, 2},
		{"exact", []Sample{{Projected: 7, Actual: 7}}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CalculateMAE(tt.samples)
			assert.InDelta(t, tt.mae, r.MAE, 1e-9)
			assert.Equal(t, tt.count, r.PlayerCount)
			assert.GreaterOrEqual(t, r.MAE, 0.0)
			assert.Len(t, r.PlayerErrors, tt.count)
			assert.Equal(t, tt.count > 0, r.Valid())
		})
	}
}

func TestCalculateWeeklyMAEExcludesNonPlayWeek(t *testing.T) {
	projections := WeekPoints{
		1: {1: 8, 2: 15, 3: 5},
		2: {1: 10, 2: 15, 3: 5},
		3: {1: 11, 2: 15, 3: 5},
	}
	actuals := WeekPoints{
		1: {1: 10, 2: 20, 3: 4},
		2: {1: 12, 2: 10, 3: 6},
		3: {1: 0, 2: 0, 3: 0},
	}
	r := CalculateWeeklyMAE(projections, actuals, 1, 3)
	require.Equal(t, 6, r.PlayerCount)
	for _, pe := range r.PlayerErrors {
		assert.NotEqual(t, 3, pe.Week)
	}
	// |10-8|+|20-15|+|4-5| + |12-10|+|10-15|+|6-5|
	assert.InDelta(t, 16.0, r.TotalError, 1e-9)
	assert.InDelta(t, 16.0/6, r.MAE, 1e-9)
}

func TestCalculateWeeklyMAESkipsMissing(t *testing.T) {
	projections := WeekPoints{1: {1: 10, 2: 10}, 2: {1: 10}}
	actuals := WeekPoints{1: {1: 12}, 4: {1: 30}}
	r := CalculateWeeklyMAE(projections, actuals, 1, 4)
	assert.Equal(t, 1, r.PlayerCount)
	assert.InDelta(t, 2.0, r.MAE, 1e-9)
}

func TestAggregateSeasonResultsIsWeighted(t *testing.T) {
	r1 := AccuracyResult{MAE: 2, PlayerCount: 10, TotalError: 20}
	r2 := AccuracyResult{MAE: 8, PlayerCount: 30, TotalError: 240}
	got := AggregateSeasonResults([]SeasonResult{{"2022", r1}, {"2023", r2}})
	assert.Equal(t, 40, got.PlayerCount)
	assert.InDelta(t, 260.0/40, got.MAE, 1e-9)
	assert.NotEqual(t, (r1.MAE+r2.MAE)/2, got.MAE)

	empty := AggregateSeasonResults([]SeasonResult{{"2022", AccuracyResult{}}})
	assert.False(t, empty.Valid())
	assert.Zero(t, empty.MAE)
}
