package params

import (
	"encoding/json"
	"fmt"
	"math"
)

type Direction string

const (
	Increasing    Direction = "INCREASING"
	Decreasing    Direction = "DECREASING"
	BiExcellentHi Direction = "BI_EXCELLENT_HI"
	BiExcellentLo Direction = "BI_EXCELLENT_LO"
)

func (d Direction) Valid() bool {
	switch d {
	case Increasing, Decreasing, BiExcellentHi, BiExcellentLo:
		return true
	}
	return false
}

func (d *Direction) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*d = Direction(s)
	if !d.Valid() {
		return fmt.Errorf("%w: DIRECTION %q", ErrInvalidParameter, s)
	}
	return nil
}

type Tier int

const (
	VeryPoor Tier = iota
	Poor
	Neutral
	Good
	Excellent
)

func (t Tier) String() string {
	switch t {
	case VeryPoor:
		return "VERY_POOR"
	case Poor:
		return "POOR"
	case Good:
		return "GOOD"
	case Excellent:
		return "EXCELLENT"
	default:
		return "NEUTRAL"
	}
}

// Tier buckets v against cut-offs placed at BASE_POSITION + k*STEPS.
//
// INCREASING: higher is better, cut-offs k=1..4 run VERY_POOR, POOR, GOOD, EXCELLENT.
// DECREASING: lower is better, cut-offs k=1..4 run EXCELLENT, GOOD, POOR, VERY_POOR.
// BI_EXCELLENT_HI / BI_EXCELLENT_LO: two-sided around BASE_POSITION, one and two
// steps either side, with the excellent end above (HI) or below (LO) the base.
func (t Thresholds) Tier(v float64) Tier {
	b, s := t.BasePosition, t.Steps
	switch t.Direction {
	case Increasing:
		switch {
		case v >= b+4*s:
			return Excellent
		case v >= b+3*s:
			return Good
		case v <= b+1*s:
			return VeryPoor
		case v <= b+2*s:
			return Poor
		}
	case Decreasing:
		switch {
		case v <= b+1*s:
			return Excellent
		case v <= b+2*s:
			return Good
		case v >= b+4*s:
			return VeryPoor
		case v >= b+3*s:
			return Poor
		}
	case BiExcellentHi, BiExcellentLo:
		d := v - b
		if t.Direction == BiExcellentLo {
			d = -d
		}
		switch {
		case d >= 2*s:
			return Excellent
		case d >= s:
			return Good
		case d <= -2*s:
			return VeryPoor
		case d <= -s:
			return Poor
		}
	}
	return Neutral
}

func (m Multipliers) For(t Tier) float64 {
	switch t {
	case Excellent:
		return m.Excellent
	case Good:
		return m.Good
	case Poor:
		return m.Poor
	case VeryPoor:
		return m.VeryPoor
	default:
		return 1.0
	}
}

// Multiplier returns the tier multiplier for v raised to the block's WEIGHT.
func (s ScoringBlock) Multiplier(v float64) float64 {
	m := s.Multipliers.For(s.Thresholds.Tier(v))
	if m <= 0 {
		return 1.0
	}
	return math.Pow(m, s.Weight)
}
