// Package board implements a bitboard representation of the 7x6
// Connect-Four grid.
//
// Each column occupies 7 bits of a 64-bit word: 6 playable rows plus
// one guard bit above the top row. Bit index = col*7 + row, with row 0
// at the bottom. The guard bit is always zero, so shifted masks in the
// alignment check never bleed into the neighboring column.
package board

import "math/bits"

// Board dimensions. The engine supports only the standard grid.
const (
	Width      = 7
	Height     = 6
	TotalCells = Width * Height
)

// bottomRowMask has one bit set at row 0 of every column.
const bottomRowMask uint64 = 0x40810204081

// ColumnOrder lists columns center-first, alternating outward. Central
// columns take part in more alignments, so trying them first gives the
// search its earliest cutoffs.
var ColumnOrder = [Width]int{3, 2, 4, 1, 5, 0, 6}

// bottomMask returns the bit at the lowest cell of col.
func bottomMask(col int) uint64 { return 1 << (col * (Height + 1)) }

// topMask returns the bit at the highest playable cell of col.
func topMask(col int) uint64 { return 1 << (Height - 1 + col*(Height+1)) }

// columnMask covers the 6 playable cells of col.
func columnMask(col int) uint64 { return ((1 << Height) - 1) << (col * (Height + 1)) }

// Position is one game state seen from the side to move: current holds
// the mover's stones, occupied the stones of both players. The zero
// value is an empty board. Branching is done by copying the value;
// Drop mutates in place.
type Position struct {
	current  uint64
	occupied uint64
	plies    int
}

// Plies returns the number of stones placed so far.
func (p Position) Plies() int { return p.plies }

// IsFull reports whether all 42 cells are occupied.
func (p Position) IsFull() bool { return p.plies == TotalCells }

// CanDrop reports whether column col still has room for a stone.
// col must be in [0, Width).
func (p Position) CanDrop(col int) bool {
	return p.occupied&topMask(col) == 0
}

// Drop places a stone for the side to move in column col and passes
// the turn. Adding the column's bottom bit to occupied carries through
// the filled run and lands on the lowest empty cell, so no row scan is
// needed. Callers must check CanDrop first; dropping into a full
// column corrupts the position.
func (p *Position) Drop(col int) {
	p.current ^= p.occupied
	p.occupied |= p.occupied + bottomMask(col)
	p.plies++
}

// WouldWin reports whether dropping in col completes four in a row for
// the side to move. The position is not modified. Callers must check
// CanDrop first.
func (p Position) WouldWin(col int) bool {
	stones := p.current
	stones |= (p.occupied + bottomMask(col)) & columnMask(col)
	return aligned(stones)
}

// Key returns the identifier used for transposition lookups. Adding
// the bottom row constant to current+occupied plants one carry bit on
// top of each column's stack, which makes the sum unique among
// reachable positions and never zero. Mirrored positions get distinct
// keys; the table treats them as unrelated.
func (p Position) Key() uint64 {
	return p.current + p.occupied + bottomRowMask
}

// StoneCount returns the number of occupied cells, which always equals
// Plies for a legally built position.
func (p Position) StoneCount() int {
	return bits.OnesCount64(p.occupied)
}

// aligned reports whether stones contains four in a row. Each
// direction collapses runs of two twice: vertical stride 1, horizontal
// stride 7, diagonal up-right 8, diagonal down-right 6.
func aligned(stones uint64) bool {
	m := stones & (stones >> 1)
	if m&(m>>2) != 0 {
		return true
	}
	m = stones & (stones >> (Height + 1))
	if m&(m>>(2*(Height+1))) != 0 {
		return true
	}
	m = stones & (stones >> (Height + 2))
	if m&(m>>(2*(Height+2))) != 0 {
		return true
	}
	m = stones & (stones >> Height)
	if m&(m>>(2*Height)) != 0 {
		return true
	}
	return false
}
