package accuracy

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

var ErrInvalidSchema = errors.New("invalid sweep schema")

// ParameterValues is one tunable parameter and the candidate values to try.
type ParameterValues struct {
	Name   string
	Values []float64
}

// SweepSchema is the immutable list of parameters a sweep walks, in order.
type SweepSchema struct {
	params []ParameterValues
}

type schemaFile struct {
	Parameters []struct {
		Name   string    `yaml:"name"`
		Values []float64 `yaml:"values"`
		Min    *float64  `yaml:"min"`
		Max    *float64  `yaml:"max"`
		Step   *float64  `yaml:"step"`
	} `yaml:"parameters"`
}

// NewSweepSchema validates ps against the parameter registry. SCHEDULE_SCORING
// is derived from MATCHUP_SCORING and cannot be swept directly.
func NewSweepSchema(ps []ParameterValues) (*SweepSchema, error) {
	if len(ps) == 0 {
		return nil, fmt.Errorf("%w: no parameters", ErrInvalidSchema)
	}
	known := params.ParameterNames()
	seen := make(map[string]bool, len(ps))
	out := make([]ParameterValues, 0, len(ps))
	for _, p := range ps {
		if _, ok := slices.BinarySearch(known, p.Name); !ok {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidSchema, params.ErrUnknownParameter, p.Name)
		}
		if strings.HasPrefix(p.Name, "SCHEDULE_SCORING.") {
			return nil, fmt.Errorf("%w: %s follows MATCHUP_SCORING", ErrInvalidSchema, p.Name)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: %s listed twice", ErrInvalidSchema, p.Name)
		}
		if len(p.Values) == 0 {
			return nil, fmt.Errorf("%w: %s has no values", ErrInvalidSchema, p.Name)
		}
		seen[p.Name] = true
		out = append(out, ParameterValues{Name: p.Name, Values: slices.Clone(p.Values)})
	}
	return &SweepSchema{params: out}, nil
}

func ParseSweepSchema(b []byte) (*SweepSchema, error) {
	var f schemaFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	ps := make([]ParameterValues, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		values := p.Values
		if len(values) == 0 && p.Min != nil && p.Max != nil && p.Step != nil {
			r, err := expandRange(*p.Min, *p.Max, *p.Step)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSchema, p.Name, err)
			}
			values = r
		}
		ps = append(ps, ParameterValues{Name: p.Name, Values: values})
	}
	return NewSweepSchema(ps)
}

func LoadSweepSchema(path string) (*SweepSchema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sweep schema: %w", err)
	}
	return ParseSweepSchema(b)
}

func expandRange(lo, hi, step float64) ([]float64, error) {
	if step <= 0 || hi < lo {
		return nil, fmt.Errorf("bad range min=%v max=%v step=%v", lo, hi, step)
	}
	n := int(math.Floor((hi-lo)/step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Round((lo+float64(i)*step)*1e6) / 1e6
	}
	return out, nil
}

// DefaultSweepSchema sweeps the weights and matchup breakpoints.
func DefaultSweepSchema() *SweepSchema {
	weights := []float64{0.5, 1.0, 1.5, 2.0, 2.5}
	s, err := NewSweepSchema([]ParameterValues{
		{Name: "PLAYER_RATING_SCORING.WEIGHT", Values: weights},
		{Name: "TEAM_QUALITY_SCORING.WEIGHT", Values: weights},
		{Name: "PERFORMANCE_SCORING.WEIGHT", Values: weights},
		{Name: "PERFORMANCE_SCORING.THRESHOLDS.STEPS", Values: []float64{0.05, 0.1, 0.15, 0.2}},
		{Name: "MATCHUP_SCORING.WEIGHT", Values: weights},
		{Name: "MATCHUP_SCORING.THRESHOLDS.STEPS", Values: []float64{4, 5, 6.4, 8}},
		{Name: "ADP_SCORING.WEIGHT", Values: weights},
		{Name: params.NormalizationMaxScale, Values: []float64{80, 100, 120, 140}},
	})
	if err != nil {
		panic(err)
	}
	return s
}

// Parameters returns a copy of the schema's parameters in sweep order.
func (s *SweepSchema) Parameters() []ParameterValues {
	out := make([]ParameterValues, len(s.params))
	for i, p := range s.params {
		out[i] = ParameterValues{Name: p.Name, Values: slices.Clone(p.Values)}
	}
	return out
}

func (s *SweepSchema) Names() []string {
	out := make([]string, len(s.params))
	for i, p := range s.params {
		out[i] = p.Name
	}
	return out
}

func (s *SweepSchema) Len() int {
	return len(s.params)
}
