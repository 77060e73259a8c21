package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedTeam scores the same points every week and counts lineup calls.
type fixedTeam struct {
	name   string
	points float64
	calls  int
}

func (f *fixedTeam) Name() string { return f.name }

func (f *fixedTeam) SetWeeklyLineup(int) float64 {
	f.calls++
	return f.points
}

func TestNewWeekBounds(t *testing.T) {
	for _, n := range []int{0, 18, -1} {
		_, err := NewWeek(n, nil)
		assert.ErrorIs(t, err, ErrInvalidWeek, "week %d", n)
	}
	for _, n := range []int{1, 17} {
		w, err := NewWeek(n, nil)
		require.NoError(t, err)
		assert.Equal(t, n, w.Number())
	}
}

func TestNewWeekRejectsTeamInTwoMatchups(t *testing.T) {
	a := &fixedTeam{name: "a"}
	b := &fixedTeam{name: "b"}
	c := &fixedTeam{name: "c"}
	_, err := NewWeek(2, []Matchup{{Home: a, Away: b}, {Home: c, Away: a}})
	assert.ErrorIs(t, err, ErrDuplicateTeam)

	_, err = NewWeek(2, []Matchup{{Home: a, Away: a}})
	assert.ErrorIs(t, err, ErrDuplicateTeam)

	w, err := NewWeek(2, []Matchup{{Home: a, Away: b}})
	require.NoError(t, err)
	w.SimulateWeek()
	assert.Equal(t, 1, a.calls)
	assert.Zero(t, c.calls)
}

func TestSimulateWeekTieIsLossForBoth(t *testing.T) {
	a := &fixedTeam{name: "a", points: 101.5}
	b := &fixedTeam{name: "b", points: 101.5}
	w, err := NewWeek(3, []Matchup{{Home: a, Away: b}})
	require.NoError(t, err)
	w.SimulateWeek()

	ra, err := w.GetResult(a)
	require.NoError(t, err)
	rb, err := w.GetResult(b)
	require.NoError(t, err)
	assert.False(t, ra.Won)
	assert.False(t, rb.Won)
	assert.Equal(t, 101.5, ra.PointsAgainst)
}

func TestSimulateWeekWinner(t *testing.T) {
	a := &fixedTeam{name: "a", points: 90}
	b := &fixedTeam{name: "b", points: 120}
	w, err := NewWeek(1, []Matchup{{Home: a, Away: b}})
	require.NoError(t, err)
	w.SimulateWeek()

	results := w.GetAllResults()
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Team.Name())
	assert.False(t, results[0].Won)
	assert.True(t, results[1].Won)
	assert.Equal(t, 90.0, results[1].PointsAgainst)
}

func TestSimulateWeekReplacesResults(t *testing.T) {
	a := &fixedTeam{name: "a", points: 90}
	b := &fixedTeam{name: "b", points: 80}
	w, err := NewWeek(2, []Matchup{{Home: a, Away: b}})
	require.NoError(t, err)
	w.SimulateWeek()
	b.points = 100
	w.SimulateWeek()

	ra, err := w.GetResult(a)
	require.NoError(t, err)
	assert.False(t, ra.Won)
	assert.Len(t, w.GetAllResults(), 2)
	assert.Equal(t, 2, a.calls)
}

func TestGetResultTeamDidNotPlay(t *testing.T) {
	a := &fixedTeam{name: "a"}
	b := &fixedTeam{name: "b"}
	idle := &fixedTeam{name: "idle"}
	w, err := NewWeek(5, []Matchup{{Home: a, Away: b}})
	require.NoError(t, err)

	_, err = w.GetResult(a)
	assert.ErrorIs(t, err, ErrTeamDidNotPlay, "before simulation")

	w.SimulateWeek()
	_, err = w.GetResult(idle)
	assert.ErrorIs(t, err, ErrTeamDidNotPlay)
}

func TestGetMatchupsReturnsCopy(t *testing.T) {
	a := &fixedTeam{name: "a"}
	b := &fixedTeam{name: "b"}
	w, err := NewWeek(4, []Matchup{{Home: a, Away: b}})
	require.NoError(t, err)

	ms := w.GetMatchups()
	ms[0].Home = b
	assert.Equal(t, a, w.GetMatchups()[0].Home)
}

func TestGenerateScheduleEveryTeamPlaysOnce(t *testing.T) {
	teams := []Team{&fixedTeam{name: "a"}, &fixedTeam{name: "b"}, &fixedTeam{name: "c"}, &fixedTeam{name: "d"}}
	sched := GenerateSchedule(teams, 17, nil)
	require.Len(t, sched, 17)
	for i, week := range sched {
		require.Len(t, week, 2, "week %d", i+1)
		seen := map[Team]bool{}
		for _, m := range week {
			assert.False(t, seen[m.Home])
			assert.False(t, seen[m.Away])
			seen[m.Home], seen[m.Away] = true, true
		}
		assert.Len(t, seen, 4)
	}
}

func TestGenerateScheduleOddTeamsHasBye(t *testing.T) {
	teams := []Team{&fixedTeam{name: "a"}, &fixedTeam{name: "b"}, &fixedTeam{name: "c"}}
	sched := GenerateSchedule(teams, 6, nil)
	require.Len(t, sched, 6)
	for _, week := range sched {
		assert.Len(t, week, 1)
	}
	assert.Len(t, teams, 3)
}
