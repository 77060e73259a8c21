// Package params holds the typed scoring-parameter schema shared by the
// accuracy and league simulations, and reads/writes the JSON config bundle.
package params

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
)

var (
	ErrMissingParameter = errors.New("missing required parameter")
	ErrInvalidParameter = errors.New("invalid parameter value")
	ErrUnknownParameter = errors.New("unknown parameter")
)

const (
	DefaultHumanErrorRate = 0.2
	DefaultHumanErrorTopN = 5
)

// PerformanceMetrics is embedded into a saved config to record how it scored.
type PerformanceMetrics struct {
	MAE           float64  `json:"mae,omitempty"`
	PlayerCount   int      `json:"player_count,omitempty"`
	TotalError    float64  `json:"total_error,omitempty"`
	Horizon       string   `json:"horizon,omitempty"`
	Seasons       []string `json:"seasons,omitempty"`
	Wins          int      `json:"wins,omitempty"`
	Losses        int      `json:"losses,omitempty"`
	WinRate       float64  `json:"win_rate,omitempty"`
	PointsPerGame float64  `json:"points_per_game,omitempty"`
	Simulations   int      `json:"simulations,omitempty"`
	ConfigID      string   `json:"config_id,omitempty"`
	Timestamp     string   `json:"timestamp,omitempty"`
}

// ScoringConfig is the file shape of draft_config.json and the week-range files.
type ScoringConfig struct {
	ConfigName         string              `json:"config_name"`
	Description        string              `json:"description"`
	Parameters         ScoringParameters   `json:"parameters"`
	PerformanceMetrics *PerformanceMetrics `json:"performance_metrics,omitempty"`
}

func (c ScoringConfig) Clone() ScoringConfig {
	out := c
	if c.PerformanceMetrics != nil {
		pm := *c.PerformanceMetrics
		pm.Seasons = append([]string(nil), c.PerformanceMetrics.Seasons...)
		out.PerformanceMetrics = &pm
	}
	return out
}

// LeagueConfig is the file shape of league_config.json.
type LeagueConfig struct {
	ConfigName         string              `json:"config_name"`
	Description        string              `json:"description"`
	Parameters         LeagueParameters    `json:"parameters"`
	PerformanceMetrics *PerformanceMetrics `json:"performance_metrics,omitempty"`
}

func (c LeagueConfig) Clone() LeagueConfig {
	out := c
	out.Parameters = c.Parameters.Clone()
	if c.PerformanceMetrics != nil {
		pm := *c.PerformanceMetrics
		out.PerformanceMetrics = &pm
	}
	return out
}

type Multipliers struct {
	Excellent float64 `json:"EXCELLENT"`
	Good      float64 `json:"GOOD"`
	Poor      float64 `json:"POOR"`
	VeryPoor  float64 `json:"VERY_POOR"`
}

func (m *Multipliers) UnmarshalJSON(b []byte) error {
	if err := requireKeys(b, "EXCELLENT", "GOOD", "POOR", "VERY_POOR"); err != nil {
		return err
	}
	type alias Multipliers
	return json.Unmarshal(b, (*alias)(m))
}

type Thresholds struct {
	BasePosition float64   `json:"BASE_POSITION"`
	Direction    Direction `json:"DIRECTION"`
	Steps        float64   `json:"STEPS"`
}

func (t *Thresholds) UnmarshalJSON(b []byte) error {
	if err := requireKeys(b, "BASE_POSITION", "DIRECTION", "STEPS"); err != nil {
		return err
	}
	type alias Thresholds
	if err := json.Unmarshal(b, (*alias)(t)); err != nil {
		return err
	}
	return t.validate()
}

func (t Thresholds) validate() error {
	if !t.Direction.Valid() {
		return fmt.Errorf("%w: DIRECTION %q", ErrInvalidParameter, t.Direction)
	}
	if t.Steps <= 0 {
		return fmt.Errorf("%w: STEPS must be positive, got %v", ErrInvalidParameter, t.Steps)
	}
	return nil
}

// ScoringBlock is one weighted multiplier category such as MATCHUP_SCORING.
type ScoringBlock struct {
	Weight      float64     `json:"WEIGHT"`
	Multipliers Multipliers `json:"MULTIPLIERS"`
	Thresholds  Thresholds  `json:"THRESHOLDS"`
}

func (s *ScoringBlock) UnmarshalJSON(b []byte) error {
	if err := requireKeys(b, "WEIGHT", "MULTIPLIERS", "THRESHOLDS"); err != nil {
		return err
	}
	type alias ScoringBlock
	return json.Unmarshal(b, (*alias)(s))
}

type ScoringParameters struct {
	NormalizationMaxScale float64      `json:"NORMALIZATION_MAX_SCALE"`
	ADPScoring            ScoringBlock `json:"ADP_SCORING"`
	PlayerRatingScoring   ScoringBlock `json:"PLAYER_RATING_SCORING"`
	TeamQualityScoring    ScoringBlock `json:"TEAM_QUALITY_SCORING"`
	PerformanceScoring    ScoringBlock `json:"PERFORMANCE_SCORING"`
	MatchupScoring        ScoringBlock `json:"MATCHUP_SCORING"`
	ScheduleScoring       ScoringBlock `json:"SCHEDULE_SCORING"`
}

func (p *ScoringParameters) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if _, ok := raw["NORMALIZATION_MAX_SCALE"]; !ok {
		return fmt.Errorf("%w: NORMALIZATION_MAX_SCALE", ErrMissingParameter)
	}
	if err := json.Unmarshal(raw["NORMALIZATION_MAX_SCALE"], &p.NormalizationMaxScale); err != nil {
		return fmt.Errorf("NORMALIZATION_MAX_SCALE: %w", err)
	}
	for _, name := range BlockNames {
		msg, ok := raw[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingParameter, name)
		}
		if err := json.Unmarshal(msg, p.block(name)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if p.NormalizationMaxScale <= 0 {
		return fmt.Errorf("%w: NORMALIZATION_MAX_SCALE must be positive", ErrInvalidParameter)
	}
	return nil
}

// SyncScheduleScoring mirrors every MATCHUP_SCORING value into SCHEDULE_SCORING.
func (p *ScoringParameters) SyncScheduleScoring() {
	p.ScheduleScoring = p.MatchupScoring
}

type ConsistencyScoring struct {
	MinWeeks        int     `json:"MIN_WEEKS"`
	LowCVThreshold  float64 `json:"LOW_CV_THRESHOLD"`
	HighCVThreshold float64 `json:"HIGH_CV_THRESHOLD"`
	Multipliers     struct {
		Low    float64 `json:"LOW"`
		Medium float64 `json:"MEDIUM"`
		High   float64 `json:"HIGH"`
	} `json:"MULTIPLIERS"`
}

func DefaultConsistencyScoring() ConsistencyScoring {
	c := ConsistencyScoring{MinWeeks: 3, LowCVThreshold: 0.3, HighCVThreshold: 0.6}
	c.Multipliers.Low = 1.10
	c.Multipliers.Medium = 1.00
	c.Multipliers.High = 0.90
	return c
}

type DraftOrderBonuses struct {
	Primary   float64 `json:"PRIMARY"`
	Secondary float64 `json:"SECONDARY"`
}

// DraftRound maps a position (or FLEX) to "P" for primary or "S" for secondary.
type DraftRound map[models.Position]string

const (
	PrimaryMark   = "P"
	SecondaryMark = "S"
)

type LeagueParameters struct {
	MaxPositions      map[models.Position]int `json:"MAX_POSITIONS"`
	StartingLineup    map[models.Position]int `json:"STARTING_LINEUP"`
	DraftOrder        []DraftRound            `json:"DRAFT_ORDER,omitempty"`
	DraftOrderBonuses DraftOrderBonuses       `json:"DRAFT_ORDER_BONUSES"`
	HumanErrorRate    float64                 `json:"HUMAN_ERROR_RATE"`
	HumanErrorTopN    int                     `json:"HUMAN_ERROR_TOP_N"`
	Consistency       ConsistencyScoring      `json:"CONSISTENCY_SCORING"`
}

func (p *LeagueParameters) UnmarshalJSON(b []byte) error {
	if err := requireKeys(b, "MAX_POSITIONS", "STARTING_LINEUP"); err != nil {
		return err
	}
	type alias LeagueParameters
	a := alias{
		HumanErrorRate: DefaultHumanErrorRate,
		HumanErrorTopN: DefaultHumanErrorTopN,
		Consistency:    DefaultConsistencyScoring(),
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*p = LeagueParameters(a)
	return p.Validate()
}

func (p LeagueParameters) Validate() error {
	if p.HumanErrorRate < 0 || p.HumanErrorRate > 1 {
		return fmt.Errorf("%w: HUMAN_ERROR_RATE %v outside [0,1]", ErrInvalidParameter, p.HumanErrorRate)
	}
	if p.HumanErrorTopN < 1 {
		return fmt.Errorf("%w: HUMAN_ERROR_TOP_N must be at least 1", ErrInvalidParameter)
	}
	if p.RosterSize() == 0 {
		return fmt.Errorf("%w: MAX_POSITIONS allows no players", ErrInvalidParameter)
	}
	for pos := range p.MaxPositions {
		if models.ParsePosition(string(pos)) == models.POS_UNKNOWN {
			return fmt.Errorf("%w: MAX_POSITIONS key %q", ErrInvalidParameter, pos)
		}
	}
	for i, round := range p.DraftOrder {
		for pos, mark := range round {
			if mark != PrimaryMark && mark != SecondaryMark {
				return fmt.Errorf("%w: DRAFT_ORDER[%d][%s] = %q", ErrInvalidParameter, i, pos, mark)
			}
		}
	}
	c := p.Consistency
	if c.LowCVThreshold > c.HighCVThreshold {
		return fmt.Errorf("%w: LOW_CV_THRESHOLD above HIGH_CV_THRESHOLD", ErrInvalidParameter)
	}
	return nil
}

// RosterSize is the total number of players a team drafts.
func (p LeagueParameters) RosterSize() int {
	n := 0
	for _, c := range p.MaxPositions {
		n += c
	}
	return n
}

func (p LeagueParameters) Clone() LeagueParameters {
	out := p
	out.MaxPositions = cloneCounts(p.MaxPositions)
	out.StartingLineup = cloneCounts(p.StartingLineup)
	out.DraftOrder = make([]DraftRound, len(p.DraftOrder))
	for i, r := range p.DraftOrder {
		nr := make(DraftRound, len(r))
		for k, v := range r {
			nr[k] = v
		}
		out.DraftOrder[i] = nr
	}
	return out
}

func cloneCounts(m map[models.Position]int) map[models.Position]int {
	if m == nil {
		return nil
	}
	out := make(map[models.Position]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func requireKeys(b []byte, keys ...string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, k := range keys {
		if _, ok := raw[k]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingParameter, k)
		}
	}
	return nil
}
