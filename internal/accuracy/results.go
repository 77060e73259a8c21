package accuracy

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

const (
	OptimalPrefix      = "optimal_"
	IntermediatePrefix = "intermediate_"
	folderTimeFormat   = "2006-01-02_15-04-05"
)

var ErrNoCheckpoint = errors.New("no intermediate checkpoint found")

// Metadata is written next to an intermediate bundle so an interrupted sweep
// can pick up after the parameter that produced it.
type Metadata struct {
	Round          int      `json:"round"`
	Parameter      string   `json:"parameter"`
	ParameterIndex int      `json:"parameter_index"`
	Seasons        []string `json:"seasons,omitempty"`
	Timestamp      string   `json:"timestamp"`
}

// AccuracyResultsManager keeps the best result and full history per horizon.
type AccuracyResultsManager struct {
	baseline  *params.Bundle
	outputDir string
	clock     clockwork.Clock

	mu      sync.RWMutex
	best    map[params.Horizon]*AccuracyConfigPerformance
	history map[params.Horizon][]*AccuracyConfigPerformance
}

func NewAccuracyResultsManager(baseline *params.Bundle, outputDir string, clock clockwork.Clock) *AccuracyResultsManager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AccuracyResultsManager{
		baseline:  baseline.Clone(),
		outputDir: outputDir,
		clock:     clock,
		best:      make(map[params.Horizon]*AccuracyConfigPerformance),
		history:   make(map[params.Horizon][]*AccuracyConfigPerformance),
	}
}

// Seed installs the performance metrics embedded in b as incumbents, so a
// resumed sweep only replaces them with strictly better results.
func (m *AccuracyResultsManager) Seed(b *params.Bundle, seasons []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseline = b.Clone()
	for h, cfg := range b.Scoring {
		pm := cfg.PerformanceMetrics
		if pm == nil || pm.PlayerCount == 0 {
			continue
		}
		at, _ := time.Parse(time.RFC3339, pm.Timestamp)
		p := NewAccuracyConfigPerformance(h, cfg, AccuracyResult{MAE: pm.MAE, PlayerCount: pm.PlayerCount, TotalError: pm.TotalError}, seasons, at)
		if pm.ConfigID != "" {
			p.ID = pm.ConfigID
		}
		p.Config.PerformanceMetrics = nil
		m.best[h] = p
	}
}

// AddResult records r for cfg under h and reports whether it became the new
// best for that horizon.
func (m *AccuracyResultsManager) AddResult(h params.Horizon, cfg params.ScoringConfig, r AccuracyResult, seasons []string) (*AccuracyConfigPerformance, bool) {
	p := NewAccuracyConfigPerformance(h, cfg, r, seasons, m.clock.Now())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[h] = append(m.history[h], p)
	if !p.IsBetterThan(m.best[h]) {
		return p, false
	}
	m.best[h] = p
	slog.Info("New best config", "horizon", h, "config", cfg.ConfigName, "mae", r.MAE, "players", r.PlayerCount)
	return p, true
}

func (m *AccuracyResultsManager) Best(h params.Horizon) (*AccuracyConfigPerformance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.best[h]
	return p, ok
}

func (m *AccuracyResultsManager) History(h params.Horizon) []*AccuracyConfigPerformance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*AccuracyConfigPerformance(nil), m.history[h]...)
}

// BestConfigs returns the config to build on for every horizon: the best
// result if one exists, otherwise the baseline.
func (m *AccuracyResultsManager) BestConfigs() map[params.Horizon]params.ScoringConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[params.Horizon]params.ScoringConfig, len(params.Horizons))
	for _, h := range params.Horizons {
		if p, ok := m.best[h]; ok {
			out[h] = p.Config.Clone()
		} else {
			out[h] = m.baseline.Scoring[h].Clone()
		}
	}
	return out
}

// Bundle assembles the current best bundle with metrics embedded. Horizons
// with no recorded result are copied from the baseline.
func (m *AccuracyResultsManager) Bundle() *params.Bundle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b := m.baseline.Clone()
	for h, p := range m.best {
		cfg := p.Config.Clone()
		cfg.PerformanceMetrics = p.Metrics()
		b.Scoring[h] = cfg
	}
	return b
}

// SaveOptimalConfigs writes the best bundle to a new timestamped folder
// under the output directory and returns its path.
func (m *AccuracyResultsManager) SaveOptimalConfigs() (string, error) {
	dir := filepath.Join(m.outputDir, OptimalPrefix+m.clock.Now().Format(folderTimeFormat))
	if err := m.Bundle().Save(dir); err != nil {
		return "", fmt.Errorf("saving optimal configs: %w", err)
	}
	slog.Info("Saved optimal configs", "dir", dir)
	return dir, nil
}

// SaveIntermediateResults checkpoints the best bundle after a parameter has
// been swept, with a metadata.json naming the round and parameter.
func (m *AccuracyResultsManager) SaveIntermediateResults(round, paramIndex int, param string, seasons []string) (string, error) {
	now := m.clock.Now()
	name := fmt.Sprintf("%s%s_r%02d_p%02d", IntermediatePrefix, now.Format(folderTimeFormat), round, paramIndex)
	dir := filepath.Join(m.outputDir, name)
	if err := m.Bundle().Save(dir); err != nil {
		return "", fmt.Errorf("saving checkpoint: %w", err)
	}
	meta := Metadata{
		Round:          round,
		Parameter:      param,
		ParameterIndex: paramIndex,
		Seasons:        seasons,
		Timestamp:      now.Format(time.RFC3339Nano),
	}
	if err := params.WriteJSON(filepath.Join(dir, params.MetadataFile), meta); err != nil {
		return "", fmt.Errorf("saving checkpoint: %w", err)
	}
	slog.Debug("Saved checkpoint", "dir", dir, "round", round, "parameter", param)
	return dir, nil
}

// LatestCheckpoint finds the newest intermediate folder under outputDir.
// Folders without a readable metadata.json are ignored.
func LatestCheckpoint(outputDir string) (string, Metadata, error) {
	entries, err := os.ReadDir(outputDir)
	if errors.Is(err, os.ErrNotExist) {
		return "", Metadata{}, ErrNoCheckpoint
	} else if err != nil {
		return "", Metadata{}, err
	}

	type found struct {
		dir  string
		meta Metadata
		at   time.Time
	}
	var all []found
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), IntermediatePrefix) {
			continue
		}
		dir := filepath.Join(outputDir, e.Name())
		var meta Metadata
		if err := params.ReadJSON(filepath.Join(dir, params.MetadataFile), &meta); err != nil {
			slog.Debug("Skipping checkpoint", "dir", dir, "error", err)
			continue
		}
		at, _ := time.Parse(time.RFC3339Nano, meta.Timestamp)
		all = append(all, found{dir, meta, at})
	}
	if len(all) == 0 {
		return "", Metadata{}, ErrNoCheckpoint
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if !a.at.Equal(b.at) {
			return a.at.After(b.at)
		}
		if a.meta.Round != b.meta.Round {
			return a.meta.Round > b.meta.Round
		}
		return a.meta.ParameterIndex > b.meta.ParameterIndex
	})
	return all[0].dir, all[0].meta, nil
}

func (m *AccuracyResultsManager) OutputDir() string {
	return m.outputDir
}
