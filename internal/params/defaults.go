package params

import "github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"

func block(excellent, good, poor, veryPoor float64, base float64, dir Direction, steps float64) ScoringBlock {
	return ScoringBlock{
		Weight:      1.0,
		Multipliers: Multipliers{Excellent: excellent, Good: good, Poor: poor, VeryPoor: veryPoor},
		Thresholds:  Thresholds{BasePosition: base, Direction: dir, Steps: steps},
	}
}

// DefaultScoringParameters is a complete, valid parameter set used to seed a
// baseline bundle.
func DefaultScoringParameters() ScoringParameters {
	p := ScoringParameters{
		NormalizationMaxScale: 100,
		ADPScoring:            block(1.20, 1.10, 0.90, 0.80, 0, Decreasing, 37.5),
		PlayerRatingScoring:   block(1.20, 1.10, 0.90, 0.80, 0, Increasing, 20),
		TeamQualityScoring:    block(1.10, 1.05, 0.95, 0.90, 0, Decreasing, 6),
		PerformanceScoring:    block(1.10, 1.05, 0.95, 0.90, 1.0, BiExcellentHi, 0.1),
		MatchupScoring:        block(1.15, 1.05, 0.95, 0.85, 0, Increasing, 6.4),
	}
	p.SyncScheduleScoring()
	return p
}

func DefaultLeagueParameters() LeagueParameters {
	order := []DraftRound{
		{models.POS_FLEX: PrimaryMark, models.POS_QB: SecondaryMark},
		{models.POS_FLEX: PrimaryMark, models.POS_QB: SecondaryMark},
		{models.POS_FLEX: PrimaryMark, models.POS_QB: SecondaryMark},
		{models.POS_FLEX: PrimaryMark, models.POS_TE: SecondaryMark},
		{models.POS_QB: PrimaryMark, models.POS_FLEX: SecondaryMark},
		{models.POS_TE: PrimaryMark, models.POS_FLEX: SecondaryMark},
		{models.POS_FLEX: PrimaryMark},
		{models.POS_FLEX: PrimaryMark},
		{models.POS_FLEX: PrimaryMark, models.POS_QB: SecondaryMark},
		{models.POS_FLEX: PrimaryMark},
		{models.POS_FLEX: PrimaryMark, models.POS_TE: SecondaryMark},
		{models.POS_FLEX: PrimaryMark},
		{models.POS_QB: PrimaryMark},
		{models.POS_DST: PrimaryMark},
		{models.POS_K: PrimaryMark},
	}
	return LeagueParameters{
		MaxPositions: map[models.Position]int{
			models.POS_QB: 2, models.POS_RB: 4, models.POS_WR: 4, models.POS_TE: 2,
			models.POS_FLEX: 1, models.POS_K: 1, models.POS_DST: 1,
		},
		StartingLineup: map[models.Position]int{
			models.POS_QB: 1, models.POS_RB: 2, models.POS_WR: 2, models.POS_TE: 1,
			models.POS_FLEX: 1, models.POS_K: 1, models.POS_DST: 1,
		},
		DraftOrder:        order,
		DraftOrderBonuses: DraftOrderBonuses{Primary: 50, Secondary: 25},
		HumanErrorRate:    DefaultHumanErrorRate,
		HumanErrorTopN:    DefaultHumanErrorTopN,
		Consistency:       DefaultConsistencyScoring(),
	}
}

// DefaultBundle returns a baseline bundle built from the default parameters.
func DefaultBundle() *Bundle {
	b := &Bundle{
		League: LeagueConfig{
			ConfigName:  "baseline",
			Description: "default league settings",
			Parameters:  DefaultLeagueParameters(),
		},
		Scoring: make(map[Horizon]ScoringConfig, len(Horizons)),
	}
	for _, h := range Horizons {
		b.Scoring[h] = ScoringConfig{
			ConfigName:  "baseline_" + string(h),
			Description: "default scoring parameters",
			Parameters:  DefaultScoringParameters(),
		}
	}
	return b
}
