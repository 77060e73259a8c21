package models

// Bye is the opponent value recorded for a team that does not play in a week.
const Bye = "BYE"

// TeamData is one NFL team's ranking row for a single week.
type TeamData struct {
	Team          string
	OffensiveRank int
	DefensiveRank int
	Opponent      string
}

func (t TeamData) OnBye() bool {
	return t.Opponent == "" || t.Opponent == Bye
}
