// Package historical loads replayable season folders: weekly player
// projections and actuals, team rankings and the NFL schedule.
package historical

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
)

var ErrNoSeasonData = errors.New("no season data")

const (
	ScheduleFile  = "season_schedule.csv"
	TeamDataDir   = "team_data"
	WeeksDir      = "weeks"
	ActualFile    = "players.csv"
	ProjectedFile = "players_projected.csv"
)

// WeekSnapshot is the player data as it stood going into a week.
type WeekSnapshot struct {
	Week      int
	Projected map[int]*models.Player
	Actual    map[int]*models.Player
}

type Season struct {
	Label string
	Weeks map[int]*WeekSnapshot
	// Teams is keyed by week, then team abbreviation.
	Teams map[int]map[string]models.TeamData

	final map[int]*models.Player
}

// SnapshotForWeek returns the snapshot for week, falling back to the closest
// earlier week that has data.
func (s *Season) SnapshotForWeek(week int) (*WeekSnapshot, bool) {
	for w := week; w >= models.FirstWeek; w-- {
		if snap, ok := s.Weeks[w]; ok {
			return snap, true
		}
	}
	return nil, false
}

// ProjectedPlayer returns the projection row for id as it stood going into
// week.
func (s *Season) ProjectedPlayer(id, week int) (*models.Player, bool) {
	snap, ok := s.SnapshotForWeek(week)
	if !ok {
		return nil, false
	}
	p, ok := snap.Projected[id]
	return p, ok
}

// ProjectedPoints returns the raw projection for id in week.
func (s *Season) ProjectedPoints(id, week int) (float64, bool) {
	p, ok := s.ProjectedPlayer(id, week)
	if !ok {
		return 0, false
	}
	return p.PointsForWeek(week)
}

// ActualPoints returns a player's realised points for week from the latest
// snapshot, which carries every played week's results.
func (s *Season) ActualPoints(id, week int) (float64, bool) {
	p, ok := s.final[id]
	if !ok {
		return 0, false
	}
	return p.PointsForWeek(week)
}

// ActualPlayer returns the latest actual-points row for id.
func (s *Season) ActualPlayer(id int) (*models.Player, bool) {
	p, ok := s.final[id]
	return p, ok
}

func (s *Season) TeamData(week int, team string) (models.TeamData, bool) {
	td, ok := s.Teams[week][strings.ToUpper(team)]
	return td, ok
}

// DraftPool returns fresh copies of the pre-season projected players.
func (s *Season) DraftPool() []*models.Player {
	snap, ok := s.SnapshotForWeek(models.FirstWeek)
	if !ok {
		return nil
	}
	ids := make([]int, 0, len(snap.Projected))
	for id := range snap.Projected {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*models.Player, 0, len(ids))
	for _, id := range ids {
		out = append(out, snap.Projected[id].Clone())
	}
	return out
}

// ActualPool returns fresh copies of the latest actual-points players.
func (s *Season) ActualPool() []*models.Player {
	ids := make([]int, 0, len(s.final))
	for id := range s.final {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*models.Player, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.final[id].Clone())
	}
	return out
}

// NewSeason builds a season from in-memory snapshots. The latest week with
// actual data becomes the source of realised points.
func NewSeason(label string, weeks map[int]*WeekSnapshot, teams map[int]map[string]models.TeamData) *Season {
	if teams == nil {
		teams = make(map[int]map[string]models.TeamData)
	}
	s := &Season{Label: label, Weeks: weeks, Teams: teams, final: map[int]*models.Player{}}
	for w := models.LastWeek; w >= models.FirstWeek; w-- {
		if snap, ok := weeks[w]; ok && len(snap.Actual) > 0 {
			s.final = snap.Actual
			break
		}
	}
	return s
}

// LoadSeasons loads each named season under root. With no labels every
// subdirectory of root that contains a weeks folder is loaded.
func LoadSeasons(root string, labels []string) ([]*Season, error) {
	if len(labels) == 0 {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("reading data dir: %w", err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			if _, err := os.Stat(filepath.Join(root, e.Name(), WeeksDir)); err == nil {
				labels = append(labels, e.Name())
			}
		}
		sort.Strings(labels)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoSeasonData, root)
	}

	seasons := make([]*Season, 0, len(labels))
	for _, label := range labels {
		s, err := LoadSeason(filepath.Join(root, label), label)
		if err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	return seasons, nil
}

func LoadSeason(dir, label string) (*Season, error) {
	weeks := make(map[int]*WeekSnapshot)
	for w := models.FirstWeek; w <= models.LastWeek; w++ {
		weekDir := filepath.Join(dir, WeeksDir, fmt.Sprintf("week_%02d", w))
		if _, err := os.Stat(weekDir); err != nil {
			continue
		}
		snap := &WeekSnapshot{Week: w}
		var err error
		if snap.Projected, err = loadPlayers(filepath.Join(weekDir, ProjectedFile)); err != nil {
			return nil, fmt.Errorf("season %s week %d: %w", label, w, err)
		}
		if snap.Actual, err = loadPlayers(filepath.Join(weekDir, ActualFile)); err != nil {
			return nil, fmt.Errorf("season %s week %d: %w", label, w, err)
		}
		weeks[w] = snap
	}
	if len(weeks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSeasonData, dir)
	}
	s := NewSeason(label, weeks, nil)

	opponents, err := loadSchedule(filepath.Join(dir, ScheduleFile))
	if err != nil {
		return nil, fmt.Errorf("season %s: %w", label, err)
	}
	if err := s.loadTeams(filepath.Join(dir, TeamDataDir), opponents); err != nil {
		return nil, fmt.Errorf("season %s: %w", label, err)
	}

	slog.Info("Loaded season", "season", label, "weeks", len(s.Weeks), "players", len(s.final))
	return s, nil
}

// loadPlayers returns an empty map when the file does not exist.
func loadPlayers(path string) (map[int]*models.Player, error) {
	t, err := readTable(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("Player file missing", "path", path)
		return map[int]*models.Player{}, nil
	}
	if err != nil {
		return nil, err
	}
	players, err := parsePlayers(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return players, nil
}

// loadSchedule reads week,team,opponent rows into week -> team -> opponent.
func loadSchedule(path string) (map[int]map[string]string, error) {
	out := make(map[int]map[string]string)
	t, err := readTable(path)
	if errors.Is(err, os.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	for _, row := range t.rows {
		week, ok := t.integer(row, "week")
		if !ok {
			continue
		}
		team := strings.ToUpper(t.str(row, "team"))
		opp := strings.ToUpper(t.str(row, "opponent"))
		if team == "" {
			continue
		}
		if out[week] == nil {
			out[week] = make(map[string]string)
		}
		if opp == "" {
			opp = models.Bye
		}
		out[week][team] = opp
	}
	return out, nil
}

func (s *Season) loadTeams(dir string, opponents map[int]map[string]string) error {
	for w := models.FirstWeek; w <= models.LastWeek; w++ {
		t, err := readTable(filepath.Join(dir, fmt.Sprintf("week_%02d.csv", w)))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		teams := make(map[string]models.TeamData, len(t.rows))
		for _, row := range t.rows {
			abbr := strings.ToUpper(t.str(row, "team"))
			if abbr == "" {
				continue
			}
			td := models.TeamData{Team: abbr, Opponent: models.Bye}
			td.OffensiveRank, _ = t.integer(row, "offensive_rank")
			td.DefensiveRank, _ = t.integer(row, "defensive_rank")
			if opp := strings.ToUpper(t.str(row, "opponent")); opp != "" {
				td.Opponent = opp
			} else if opp, ok := opponents[w][abbr]; ok {
				td.Opponent = opp
			}
			teams[abbr] = td
		}
		s.Teams[w] = teams
	}
	return nil
}
