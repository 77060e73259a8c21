package params

import (
	"fmt"
	"sort"
	"strings"
)

const NormalizationMaxScale = "NORMALIZATION_MAX_SCALE"

// BlockNames lists the scoring blocks every scoring config must declare.
var BlockNames = []string{
	"ADP_SCORING",
	"PLAYER_RATING_SCORING",
	"TEAM_QUALITY_SCORING",
	"PERFORMANCE_SCORING",
	"MATCHUP_SCORING",
	"SCHEDULE_SCORING",
}

var blockFields = []string{
	"WEIGHT",
	"MULTIPLIERS.EXCELLENT",
	"MULTIPLIERS.GOOD",
	"MULTIPLIERS.POOR",
	"MULTIPLIERS.VERY_POOR",
	"THRESHOLDS.BASE_POSITION",
	"THRESHOLDS.STEPS",
}

func (p *ScoringParameters) block(name string) *ScoringBlock {
	switch name {
	case "ADP_SCORING":
		return &p.ADPScoring
	case "PLAYER_RATING_SCORING":
		return &p.PlayerRatingScoring
	case "TEAM_QUALITY_SCORING":
		return &p.TeamQualityScoring
	case "PERFORMANCE_SCORING":
		return &p.PerformanceScoring
	case "MATCHUP_SCORING":
		return &p.MatchupScoring
	case "SCHEDULE_SCORING":
		return &p.ScheduleScoring
	}
	return nil
}

// ParameterNames returns every tunable dotted parameter name, sorted.
func ParameterNames() []string {
	names := []string{NormalizationMaxScale}
	for _, b := range BlockNames {
		for _, f := range blockFields {
			names = append(names, b+"."+f)
		}
	}
	sort.Strings(names)
	return names
}

func (p *ScoringParameters) field(name string) (*float64, error) {
	if name == NormalizationMaxScale {
		return &p.NormalizationMaxScale, nil
	}
	blockName, rest, ok := strings.Cut(name, ".")
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParameter, name)
	}
	b := p.block(blockName)
	if b == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParameter, name)
	}
	switch rest {
	case "WEIGHT":
		return &b.Weight, nil
	case "MULTIPLIERS.EXCELLENT":
		return &b.Multipliers.Excellent, nil
	case "MULTIPLIERS.GOOD":
		return &b.Multipliers.Good, nil
	case "MULTIPLIERS.POOR":
		return &b.Multipliers.Poor, nil
	case "MULTIPLIERS.VERY_POOR":
		return &b.Multipliers.VeryPoor, nil
	case "THRESHOLDS.BASE_POSITION":
		return &b.Thresholds.BasePosition, nil
	case "THRESHOLDS.STEPS":
		return &b.Thresholds.Steps, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownParameter, name)
}

func (p *ScoringParameters) Get(name string) (float64, error) {
	f, err := p.field(name)
	if err != nil {
		return 0, err
	}
	return *f, nil
}

// Set assigns a parameter by dotted name. Writes to MATCHUP_SCORING are
// mirrored into SCHEDULE_SCORING.
func (p *ScoringParameters) Set(name string, v float64) error {
	f, err := p.field(name)
	if err != nil {
		return err
	}
	if name == NormalizationMaxScale && v <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidParameter, name)
	}
	if strings.HasSuffix(name, "THRESHOLDS.STEPS") && v <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidParameter, name)
	}
	*f = v
	if strings.HasPrefix(name, "MATCHUP_SCORING.") {
		p.SyncScheduleScoring()
	}
	return nil
}
