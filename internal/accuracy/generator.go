package accuracy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

// MaxCrossProduct caps CrossProduct. Use per-parameter sweeps beyond it.
const MaxCrossProduct = 10000

var ErrCrossProductTooLarge = errors.New("cross product too large")

// Candidate is one scoring config per horizon to evaluate together.
type Candidate struct {
	Label     string
	Parameter string
	Value     float64
	Configs   map[params.Horizon]params.ScoringConfig
}

// Apply returns a copy of b with the candidate's scoring configs.
func (c Candidate) Apply(b *params.Bundle) *params.Bundle {
	out := b.Clone()
	for h, cfg := range c.Configs {
		out.Scoring[h] = cfg.Clone()
	}
	return out
}

// ConfigGenerator derives candidate configs from a baseline bundle and a
// sweep schema.
type ConfigGenerator struct {
	baseline *params.Bundle
	schema   *SweepSchema
}

func NewConfigGenerator(baseline *params.Bundle, schema *SweepSchema) *ConfigGenerator {
	return &ConfigGenerator{baseline: baseline.Clone(), schema: schema}
}

func (g *ConfigGenerator) Baseline() *params.Bundle {
	return g.baseline.Clone()
}

func (g *ConfigGenerator) Schema() *SweepSchema {
	return g.schema
}

// BaselineCandidate evaluates the baseline configs unchanged.
func (g *ConfigGenerator) BaselineCandidate() Candidate {
	c := Candidate{Label: "baseline", Configs: make(map[params.Horizon]params.ScoringConfig, len(params.Horizons))}
	for h, cfg := range g.baseline.Scoring {
		cfg = cfg.Clone()
		cfg.PerformanceMetrics = nil
		c.Configs[h] = cfg
	}
	return c
}

// ParameterValueSets returns one value set per schema parameter.
func (g *ConfigGenerator) ParameterValueSets() []ParameterValues {
	return g.schema.Parameters()
}

// CandidatesFor builds one candidate per schema value of param, each taking
// base for every horizon with param overridden.
func (g *ConfigGenerator) CandidatesFor(param string, base map[params.Horizon]params.ScoringConfig) ([]Candidate, error) {
	var values []float64
	for _, p := range g.schema.params {
		if p.Name == param {
			values = p.Values
		}
	}
	if values == nil {
		return nil, fmt.Errorf("%w: %s not in sweep schema", params.ErrUnknownParameter, param)
	}
	out := make([]Candidate, 0, len(values))
	for _, v := range values {
		c, err := candidate(base, map[string]float64{param: v}, []string{param})
		if err != nil {
			return nil, err
		}
		c.Parameter, c.Value = param, v
		out = append(out, c)
	}
	return out, nil
}

// CrossProduct builds a candidate for every combination of schema values.
func (g *ConfigGenerator) CrossProduct(base map[params.Horizon]params.ScoringConfig) ([]Candidate, error) {
	total := 1
	for _, p := range g.schema.params {
		total *= len(p.Values)
		if total > MaxCrossProduct {
			return nil, fmt.Errorf("%w: more than %d combinations", ErrCrossProductTooLarge, MaxCrossProduct)
		}
	}
	names := g.schema.Names()
	out := make([]Candidate, 0, total)
	idx := make([]int, len(names))
	for {
		set := make(map[string]float64, len(names))
		for i, n := range names {
			set[n] = g.schema.params[i].Values[idx[i]]
		}
		c, err := candidate(base, set, names)
		if err != nil {
			return nil, err
		}
		out = append(out, c)

		// odometer increment, last parameter fastest
		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(g.schema.params[i].Values) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return out, nil
		}
	}
}

func candidate(base map[params.Horizon]params.ScoringConfig, set map[string]float64, order []string) (Candidate, error) {
	parts := make([]string, 0, len(order))
	for _, n := range order {
		parts = append(parts, n+"="+strconv.FormatFloat(set[n], 'g', -1, 64))
	}
	label := strings.Join(parts, ",")

	c := Candidate{Label: label, Configs: make(map[params.Horizon]params.ScoringConfig, len(base))}
	for h, cfg := range base {
		cfg = cfg.Clone()
		cfg.PerformanceMetrics = nil
		for _, n := range order {
			if err := cfg.Parameters.Set(n, set[n]); err != nil {
				return Candidate{}, fmt.Errorf("candidate %s: %w", label, err)
			}
		}
		cfg.ConfigName = string(h) + ":" + label
		c.Configs[h] = cfg
	}
	return c, nil
}
