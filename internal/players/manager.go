// Package players keeps the in-memory player pool a single simulation run
// drafts from and scores against.
package players

import (
	"errors"
	"fmt"
	"sort"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
)

var ErrUnknownPlayer = errors.New("unknown player")

// ProjectionSource answers a player's points for a week. ok is false when the
// player has no value for that week.
type ProjectionSource interface {
	Points(playerID, week int) (pts float64, ok bool)
}

// Manager is a pool of players keyed by id. It is owned by one simulation
// loop and is not safe for concurrent mutation.
type Manager struct {
	order []int
	byID  map[int]*models.Player
}

// NewManager takes ownership of the given players.
func NewManager(ps []*models.Player) *Manager {
	m := &Manager{byID: make(map[int]*models.Player, len(ps))}
	for _, p := range ps {
		if _, dup := m.byID[p.ID]; dup {
			continue
		}
		m.byID[p.ID] = p
		m.order = append(m.order, p.ID)
	}
	sort.Ints(m.order)
	return m
}

// Clone returns an independent pool with every drafted/locked flag copied.
func (m *Manager) Clone() *Manager {
	out := &Manager{order: append([]int(nil), m.order...), byID: make(map[int]*models.Player, len(m.byID))}
	for id, p := range m.byID {
		out.byID[id] = p.Clone()
	}
	return out
}

func (m *Manager) Len() int {
	return len(m.order)
}

func (m *Manager) Get(id int) (*models.Player, bool) {
	p, ok := m.byID[id]
	return p, ok
}

func (m *Manager) Points(id, week int) (float64, bool) {
	p, ok := m.byID[id]
	if !ok {
		return 0, false
	}
	return p.PointsForWeek(week)
}

// Players returns every player in id order.
func (m *Manager) Players() []*models.Player {
	out := make([]*models.Player, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

// Available returns undrafted, unlocked players in id order.
func (m *Manager) Available() []*models.Player {
	var out []*models.Player
	for _, id := range m.order {
		if p := m.byID[id]; p.IsAvailable() {
			out = append(out, p)
		}
	}
	return out
}

func (m *Manager) SetDrafted(id int, state models.DraftedState) error {
	p, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	p.Drafted = state
	return nil
}

func (m *Manager) Lock(id int, locked bool) error {
	p, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	p.Locked = locked
	return nil
}
