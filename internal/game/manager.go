// Package game tracks interactive play sessions against the engine.
package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fourscore/solver/internal/board"
)

// ErrNotFound is returned when a session id is unknown, expired, or
// already removed.
var ErrNotFound = errors.New("game not found")

// Game is one play session. Winner is board.FirstPlayer or
// board.SecondPlayer once somebody aligned four, and board.Empty while
// the game runs or when it ends drawn.
type Game struct {
	ID        string
	Pos       board.Position
	Moves     string // 1-based column digits, oldest first
	Over      bool
	Winner    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Apply drops a stone for the side to move and updates the outcome
// bookkeeping. Moves into finished games, out-of-range columns, and
// full columns are rejected with the board sentinels.
func (g *Game) Apply(col int) error {
	if g.Over {
		return board.ErrGameOver
	}
	if col < 0 || col >= board.Width {
		return board.ErrInvalidColumn
	}
	if !g.Pos.CanDrop(col) {
		return board.ErrColumnFull
	}

	if g.Pos.WouldWin(col) {
		g.Over = true
		g.Winner = g.Pos.SideToMove()
	}
	g.Pos.Drop(col)
	g.Moves += string(byte('1' + col))

	if g.Pos.IsFull() {
		g.Over = true
	}
	return nil
}

// Manager holds sessions behind an RWMutex. Get and Update exchange
// value snapshots, so a slow engine search never runs under the lock.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*Game
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*Game)}
}

// New registers a fresh session on an empty board.
func (m *Manager) New() Game {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	g := &Game{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.games[g.ID] = g
	return *g
}

// Get returns a snapshot of the session.
func (m *Manager) Get(id string) (Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return Game{}, ErrNotFound
	}
	return *g, nil
}

// Update writes a session snapshot back and bumps UpdatedAt.
func (m *Manager) Update(g Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.games[g.ID]
	if !ok {
		return ErrNotFound
	}
	g.CreatedAt = cur.CreatedAt
	g.UpdatedAt = time.Now()
	*cur = g
	return nil
}

// Remove drops a session. Removing an unknown id is a no-op.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Sweep removes sessions idle for longer than maxAge and reports how
// many it removed.
func (m *Manager) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, g := range m.games {
		if g.UpdatedAt.Before(cutoff) {
			delete(m.games, id)
			removed++
		}
	}
	return removed
}
