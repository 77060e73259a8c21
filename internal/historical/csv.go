package historical

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
)

// table is a header-indexed CSV file.
type table struct {
	cols map[string]int
	rows [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseTable(f)
}

func parseTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &table{cols: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	t := &table{cols: make(map[string]int, len(header))}
	for i, h := range header {
		t.cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))] = i
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(t.rows)+2, err)
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

func (t *table) has(col string) bool {
	_, ok := t.cols[col]
	return ok
}

func (t *table) str(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// number returns the numeric value of col, or false when the cell is empty or
// holds one of the usual missing-value markers.
func (t *table) number(row []string, col string) (float64, bool) {
	s := t.str(row, col)
	switch strings.ToLower(s) {
	case "", "nan", "none", "null", "n/a", "-":
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func (t *table) integer(row []string, col string) (int, bool) {
	v, ok := t.number(row, col)
	if !ok {
		return 0, false
	}
	return int(v), true
}

func weekColumn(week int) string {
	return fmt.Sprintf("week_%d_points", week)
}

// parsePlayers reads a players.csv / players_projected.csv file. Rows without
// a usable id are skipped.
func parsePlayers(t *table) (map[int]*models.Player, error) {
	if !t.has("id") {
		return nil, errors.New("players file has no id column")
	}
	out := make(map[int]*models.Player, len(t.rows))
	for _, row := range t.rows {
		id, ok := t.integer(row, "id")
		if !ok {
			continue
		}
		p := &models.Player{
			ID:           id,
			Name:         t.str(row, "name"),
			Team:         strings.ToUpper(t.str(row, "team")),
			Position:     models.ParsePosition(t.str(row, "position")),
			InjuryStatus: t.str(row, "injury_status"),
			WeekPoints:   make(map[int]float64),
		}
		p.ByeWeek, _ = t.integer(row, "bye_week")
		p.FantasyPoints, _ = t.number(row, "fantasy_points")
		if v, ok := t.number(row, "average_draft_position"); ok {
			p.ADP = &v
		}
		if v, ok := t.number(row, "player_rating"); ok {
			p.PlayerRating = &v
		}
		for w := models.FirstWeek; w <= models.LastWeek; w++ {
			if v, ok := t.number(row, weekColumn(w)); ok {
				p.WeekPoints[w] = v
			}
		}
		out[id] = p
	}
	return out, nil
}
