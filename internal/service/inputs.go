package service

import (
	"fmt"
	"log/slog"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/accuracy"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/config"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/historical"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

// Inputs are the files every binary starts from.
type Inputs struct {
	Seasons  []*historical.Season
	Baseline *params.Bundle
	Schema   *accuracy.SweepSchema
}

// LoadInputs reads the baseline bundle, the sweep schema and the historical
// seasons named by cfg. Without SWEEP_SCHEMA the built-in schema is used.
func LoadInputs(cfg *config.Config) (*Inputs, error) {
	baseline, err := params.LoadBundle(cfg.Data.BaselineDir)
	if err != nil {
		return nil, fmt.Errorf("loading baseline: %w", err)
	}

	schema := accuracy.DefaultSweepSchema()
	if cfg.Sweep.SchemaPath != "" {
		schema, err = accuracy.LoadSweepSchema(cfg.Sweep.SchemaPath)
		if err != nil {
			return nil, fmt.Errorf("loading sweep schema: %w", err)
		}
	}

	seasons, err := historical.LoadSeasons(cfg.Data.Dir, cfg.Data.Seasons)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded inputs", "seasons", len(seasons), "parameters", schema.Len(), "baseline", cfg.Data.BaselineDir)
	return &Inputs{Seasons: seasons, Baseline: baseline, Schema: schema}, nil
}
