package board

import (
	"errors"
	"fmt"
	"strings"
)

// Parse rejects a move with one of these. Returned errors wrap the
// sentinel and name the offending 1-based move index.
var (
	ErrInvalidColumn = errors.New("invalid column")
	ErrColumnFull    = errors.New("column full")
	ErrGameOver      = errors.New("game already decided")
)

// Cell contents reported by CellAt.
const (
	Empty        = 0
	FirstPlayer  = 1
	SecondPlayer = 2
)

// Parse builds a position by applying a string of 1-based column
// digits ('1' through '7') to an empty board. A drop into a full
// column fails, as does a move that completes four in a row: the
// search only accepts undecided positions, so a sequence that ends the
// game is rejected even on its last move.
func Parse(moves string) (Position, error) {
	var p Position
	for i := 0; i < len(moves); i++ {
		c := moves[i]
		if c < '1' || c > '0'+Width {
			return Position{}, fmt.Errorf("move %d (%q): %w", i+1, string(c), ErrInvalidColumn)
		}
		col := int(c - '1')
		if !p.CanDrop(col) {
			return Position{}, fmt.Errorf("move %d (column %d): %w", i+1, col+1, ErrColumnFull)
		}
		if p.WouldWin(col) {
			return Position{}, fmt.Errorf("move %d (column %d): %w", i+1, col+1, ErrGameOver)
		}
		p.Drop(col)
	}
	return p, nil
}

// SideToMove returns FirstPlayer or SecondPlayer.
func (p Position) SideToMove() int {
	if p.plies%2 == 0 {
		return FirstPlayer
	}
	return SecondPlayer
}

// CellAt returns the stone at (col, row), with row 0 at the bottom:
// Empty, FirstPlayer, or SecondPlayer. The bitboard only distinguishes
// mover from opponent, so ownership is recovered from move parity.
func (p Position) CellAt(col, row int) int {
	bit := uint64(1) << (col*(Height+1) + row)
	if p.occupied&bit == 0 {
		return Empty
	}
	mine := p.current&bit != 0
	if mine == (p.plies%2 == 0) {
		return FirstPlayer
	}
	return SecondPlayer
}

// String renders the grid top row first, 'x' for the first player,
// 'o' for the second, '.' for empty cells, with a 1-based column
// footer.
func (p Position) String() string {
	var b strings.Builder
	for row := Height - 1; row >= 0; row-- {
		for col := 0; col < Width; col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			switch p.CellAt(col, row) {
			case FirstPlayer:
				b.WriteByte('x')
			case SecondPlayer:
				b.WriteByte('o')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("1 2 3 4 5 6 7\n")
	return b.String()
}
