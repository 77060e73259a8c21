package models

import "fmt"

const (
	FirstWeek = 1
	LastWeek  = 17

	// MissingADP sorts players without an average draft position after everyone else.
	MissingADP = 999.0
)

type DraftedState int

const (
	FreeAgent DraftedState = iota
	DraftedByOpponent
	OnUserTeam
)

func (d DraftedState) String() string {
	switch d {
	case FreeAgent:
		return "free agent"
	case DraftedByOpponent:
		return "drafted"
	case OnUserTeam:
		return "rostered"
	default:
		return fmt.Sprintf("DraftedState(%d)", int(d))
	}
}

type Player struct {
	ID            int
	Name          string
	Team          string
	Position      Position
	ByeWeek       int
	FantasyPoints float64
	InjuryStatus  string
	// ADP and PlayerRating are nil when the source row had no value.
	ADP          *float64
	PlayerRating *float64
	// WeekPoints holds weeks 1..17; a missing key is a bye or no data.
	WeekPoints map[int]float64
	Drafted    DraftedState
	Locked     bool
}

// Clone returns a copy whose drafted/locked flags can be changed without
// affecting p. Week data is shared because it is never mutated after load.
func (p *Player) Clone() *Player {
	c := *p
	return &c
}

func (p *Player) PointsForWeek(week int) (float64, bool) {
	v, ok := p.WeekPoints[week]
	return v, ok
}

// ADPOrDefault returns the ADP or MissingADP.
func (p *Player) ADPOrDefault() float64 {
	if p.ADP == nil {
		return MissingADP
	}
	return *p.ADP
}

func (p *Player) RatingOrDefault() float64 {
	if p.PlayerRating == nil {
		return 0
	}
	return *p.PlayerRating
}

// SeasonPoints sums the weekly points, falling back to the FantasyPoints column
// when no weekly values were recorded.
func (p *Player) SeasonPoints() float64 {
	if len(p.WeekPoints) == 0 {
		return p.FantasyPoints
	}
	total := 0.0
	for w := FirstWeek; w <= LastWeek; w++ {
		total += p.WeekPoints[w]
	}
	return total
}

// PointsThrough returns the recorded weekly points for weeks before week, in
// week order, skipping weeks with no data.
func (p *Player) PointsThrough(week int) []float64 {
	var out []float64
	for w := FirstWeek; w < week && w <= LastWeek; w++ {
		if v, ok := p.WeekPoints[w]; ok {
			out = append(out, v)
		}
	}
	return out
}

func (p *Player) IsAvailable() bool {
	return p.Drafted == FreeAgent && !p.Locked
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s - %s)", p.Name, p.Position, p.Team)
}
