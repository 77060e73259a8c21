package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Horizon string

const (
	ROS        Horizon = "ros"
	Week1To5   Horizon = "week_1_5"
	Week6To9   Horizon = "week_6_9"
	Week10To13 Horizon = "week_10_13"
	Week14To17 Horizon = "week_14_17"
)

// Horizons lists every prediction window in file order.
var Horizons = []Horizon{ROS, Week1To5, Week6To9, Week10To13, Week14To17}

const (
	LeagueFile   = "league_config.json"
	DraftFile    = "draft_config.json"
	MetadataFile = "metadata.json"
)

var horizonFiles = map[Horizon]string{
	ROS:        DraftFile,
	Week1To5:   "week1-5.json",
	Week6To9:   "week6-9.json",
	Week10To13: "week10-13.json",
	Week14To17: "week14-17.json",
}

var horizonWeeks = map[Horizon][2]int{
	ROS:        {1, 17},
	Week1To5:   {1, 5},
	Week6To9:   {6, 9},
	Week10To13: {10, 13},
	Week14To17: {14, 17},
}

func ParseHorizon(s string) (Horizon, error) {
	h := Horizon(s)
	if _, ok := horizonFiles[h]; !ok {
		return "", fmt.Errorf("unknown horizon %q", s)
	}
	return h, nil
}

// FileName is the bundle file that stores h's scoring config.
func (h Horizon) FileName() string {
	return horizonFiles[h]
}

// Weeks returns the inclusive week range h covers.
func (h Horizon) Weeks() (start, end int) {
	r := horizonWeeks[h]
	return r[0], r[1]
}

// IsWeekly reports whether h is one of the four week-range windows.
func (h Horizon) IsWeekly() bool {
	return h != ROS
}

// HorizonForWeek returns the week-range horizon containing week.
func HorizonForWeek(week int) Horizon {
	for _, h := range Horizons[1:] {
		start, end := h.Weeks()
		if week >= start && week <= end {
			return h
		}
	}
	return Week14To17
}

// Bundle is a full configuration folder: one league config and one scoring
// config per horizon.
type Bundle struct {
	League  LeagueConfig
	Scoring map[Horizon]ScoringConfig
}

func (b *Bundle) Clone() *Bundle {
	out := &Bundle{League: b.League.Clone(), Scoring: make(map[Horizon]ScoringConfig, len(b.Scoring))}
	for h, c := range b.Scoring {
		out.Scoring[h] = c.Clone()
	}
	return out
}

func LoadBundle(dir string) (*Bundle, error) {
	b := &Bundle{Scoring: make(map[Horizon]ScoringConfig, len(Horizons))}
	if err := ReadJSON(filepath.Join(dir, LeagueFile), &b.League); err != nil {
		return nil, err
	}
	for _, h := range Horizons {
		var c ScoringConfig
		if err := ReadJSON(filepath.Join(dir, h.FileName()), &c); err != nil {
			return nil, err
		}
		b.Scoring[h] = c
	}
	return b, nil
}

// Save writes all six files into dir, creating it if needed. SCHEDULE_SCORING
// is synced from MATCHUP_SCORING in every scoring file before writing.
func (b *Bundle) Save(dir string) error {
	if err := WriteJSON(filepath.Join(dir, LeagueFile), b.League); err != nil {
		return err
	}
	for _, h := range Horizons {
		c, ok := b.Scoring[h]
		if !ok {
			return fmt.Errorf("bundle has no %s config", h)
		}
		c.Parameters.SyncScheduleScoring()
		if err := WriteJSON(filepath.Join(dir, h.FileName()), c); err != nil {
			return err
		}
	}
	return nil
}

func ReadJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
