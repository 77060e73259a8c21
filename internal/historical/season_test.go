package historical

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
)

func playerHeader() string {
	cols := []string{"id", "name", "position", "team", "bye_week", "fantasy_points", "injury_status", "average_draft_position", "player_rating"}
	for w := 1; w <= 17; w++ {
		cols = append(cols, fmt.Sprintf("week_%d_points", w))
	}
	return strings.Join(cols, ",")
}

func playerRow(id int, name, pos, team string, adp string, weeks map[int]string) string {
	cells := []string{fmt.Sprint(id), name, pos, team, "7", "100", "ACTIVE", adp, "75"}
	for w := 1; w <= 17; w++ {
		cells = append(cells, weeks[w])
	}
	return strings.Join(cells, ",")
}

func writeFile(t *testing.T, path string, lines ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

func writeSeason(t *testing.T, root, label string) {
	t.Helper()
	dir := filepath.Join(root, label)
	for w := 1; w <= 2; w++ {
		weekDir := filepath.Join(dir, WeeksDir, fmt.Sprintf("week_%02d", w))
		writeFile(t, filepath.Join(weekDir, ProjectedFile),
			playerHeader(),
			playerRow(1, "Alpha QB", "QB", "kc", "12.5", map[int]string{1: "20", 2: "21"}),
			playerRow(2, "Bravo RB", "RB", "SF", "nan", map[int]string{1: "15", 2: ""}),
		)
		actual := map[int]string{1: "24"}
		if w == 2 {
			actual[2] = "18"
		}
		writeFile(t, filepath.Join(weekDir, ActualFile),
			playerHeader(),
			playerRow(1, "Alpha QB", "QB", "KC", "12.5", actual),
			playerRow(2, "Bravo RB", "RB", "SF", "", map[int]string{1: "0"}),
		)
	}
	writeFile(t, filepath.Join(dir, ScheduleFile),
		"week,team,opponent",
		"1,KC,SF",
		"1,SF,KC",
	)
	writeFile(t, filepath.Join(dir, TeamDataDir, "week_01.csv"),
		"team,offensive_rank,defensive_rank",
		"KC,3,10",
		"SF,5,2",
		"DAL,8,20",
	)
}

func TestLoadSeason(t *testing.T) {
	root := t.TempDir()
	writeSeason(t, root, "2023")

	s, err := LoadSeason(filepath.Join(root, "2023"), "2023")
	require.NoError(t, err)
	assert.Len(t, s.Weeks, 2)

	snap, ok := s.SnapshotForWeek(1)
	require.True(t, ok)
	qb := snap.Projected[1]
	require.NotNil(t, qb)
	assert.Equal(t, "KC", qb.Team)
	assert.Equal(t, models.POS_QB, qb.Position)
	assert.Equal(t, 12.5, qb.ADPOrDefault())
	assert.Equal(t, 20.0, qb.WeekPoints[1])

	rb := snap.Projected[2]
	assert.Nil(t, rb.ADP)
	_, has := rb.PointsForWeek(2)
	assert.False(t, has)

	pts, ok := s.ActualPoints(1, 2)
	assert.True(t, ok)
	assert.Equal(t, 18.0, pts)
	_, ok = s.ActualPoints(99, 1)
	assert.False(t, ok)

	kc, ok := s.TeamData(1, "kc")
	require.True(t, ok)
	assert.Equal(t, "SF", kc.Opponent)
	assert.Equal(t, 10, kc.DefensiveRank)
	dal, _ := s.TeamData(1, "DAL")
	assert.True(t, dal.OnBye())
}

func TestSnapshotFallsBackToEarlierWeek(t *testing.T) {
	root := t.TempDir()
	writeSeason(t, root, "2023")
	s, err := LoadSeason(filepath.Join(root, "2023"), "2023")
	require.NoError(t, err)

	snap, ok := s.SnapshotForWeek(9)
	require.True(t, ok)
	assert.Equal(t, 2, snap.Week)
}

func TestDraftPoolReturnsCopies(t *testing.T) {
	root := t.TempDir()
	writeSeason(t, root, "2023")
	s, err := LoadSeason(filepath.Join(root, "2023"), "2023")
	require.NoError(t, err)

	pool := s.DraftPool()
	require.Len(t, pool, 2)
	assert.Equal(t, 1, pool[0].ID)
	pool[0].Drafted = models.OnUserTeam
	assert.Equal(t, models.FreeAgent, s.Weeks[1].Projected[1].Drafted)
}

func TestLoadSeasonsDiscoversFolders(t *testing.T) {
	root := t.TempDir()
	writeSeason(t, root, "2022")
	writeSeason(t, root, "2023")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes"), 0o755))

	seasons, err := LoadSeasons(root, nil)
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, "2022", seasons[0].Label)
	assert.Equal(t, "2023", seasons[1].Label)
}

func TestLoadSeasonWithoutWeeks(t *testing.T) {
	_, err := LoadSeason(t.TempDir(), "empty")
	assert.ErrorIs(t, err, ErrNoSeasonData)

	_, err = LoadSeasons(t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrNoSeasonData)
}

func TestParseTableMissingValues(t *testing.T) {
	tbl, err := parseTable(strings.NewReader("id,average_draft_position\n1.0,None\n,5\n"))
	require.NoError(t, err)
	players, err := parsePlayers(tbl)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Nil(t, players[1].ADP)

	tbl, err = parseTable(strings.NewReader("name\nx\n"))
	require.NoError(t, err)
	_, err = parsePlayers(tbl)
	assert.Error(t, err)
}
