// Package accuracy measures how well a scoring configuration's projections
// match realised fantasy points, and runs tournaments that keep the most
// accurate configuration per prediction horizon.
package accuracy

import "math"

// Sample is one projected/actual pair for a player.
type Sample struct {
	PlayerID  int
	Week      int
	Projected float64
	Actual    float64
}

// PlayerError is the absolute error recorded for one surviving sample.
type PlayerError struct {
	PlayerID int
	Week     int
	Error    float64
}

// AccuracyResult is the MAE over the samples that survived filtering. A
// result with PlayerCount zero is invalid and never wins a comparison.
type AccuracyResult struct {
	MAE          float64
	PlayerCount  int
	TotalError   float64
	PlayerErrors []PlayerError
}

func (r AccuracyResult) Valid() bool {
	return r.PlayerCount > 0
}

// CalculateMAE averages |actual - projected| over samples with a positive
// actual. Zero or negative actuals are treated as did-not-play.
func CalculateMAE(samples []Sample) AccuracyResult {
	var r AccuracyResult
	for _, s := range samples {
		if s.Actual <= 0 {
			continue
		}
		e := math.Abs(s.Actual - s.Projected)
		r.TotalError += e
		r.PlayerCount++
		r.PlayerErrors = append(r.PlayerErrors, PlayerError{PlayerID: s.PlayerID, Week: s.Week, Error: e})
	}
	if r.PlayerCount > 0 {
		r.MAE = r.TotalError / float64(r.PlayerCount)
	}
	return r
}

// WeekPoints maps week -> player id -> points.
type WeekPoints map[int]map[int]float64

// CalculateWeeklyMAE builds one sample per player present on both sides for
// each week in [start, end]. Missing weeks and players are skipped.
func CalculateWeeklyMAE(projections, actuals WeekPoints, start, end int) AccuracyResult {
	var samples []Sample
	for w := start; w <= end; w++ {
		proj, ok := projections[w]
		if !ok {
			continue
		}
		act, ok := actuals[w]
		if !ok {
			continue
		}
		for id, p := range proj {
			a, ok := act[id]
			if !ok {
				continue
			}
			samples = append(samples, Sample{PlayerID: id, Week: w, Projected: p, Actual: a})
		}
	}
	return CalculateMAE(samples)
}

// SeasonResult labels a result with the season it came from.
type SeasonResult struct {
	Season string
	Result AccuracyResult
}

// AggregateSeasonResults combines seasons weighted by sample count:
// sum(total_error) / sum(player_count).
func AggregateSeasonResults(results []SeasonResult) AccuracyResult {
	var out AccuracyResult
	for _, sr := range results {
		out.TotalError += sr.Result.TotalError
		out.PlayerCount += sr.Result.PlayerCount
		out.PlayerErrors = append(out.PlayerErrors, sr.Result.PlayerErrors...)
	}
	if out.PlayerCount > 0 {
		out.MAE = out.TotalError / float64(out.PlayerCount)
	}
	return out
}
