// Package solver computes exact Connect-Four scores with a negamax
// search, alpha-beta pruning, and a transposition table.
package solver

import (
	"github.com/fourscore/solver/internal/board"
	"github.com/fourscore/solver/internal/cache"
)

// Score bounds of the scoring convention: a win on the mover's next
// drop at ply p scores (43-p)/2, a draw 0, and a forced loss the
// negated win formula at the opponent's winning ply. Faster wins score
// higher, slower losses score higher.
const (
	MinScore = -(board.TotalCells) / 2
	MaxScore = (board.TotalCells + 1) / 2
)

// Solver searches positions against one owned transposition table.
// It keeps per-solve counters and is not safe for concurrent use; run
// one Solver per goroutine and reuse it across calls to keep the
// table warm.
type Solver struct {
	table *cache.Table
	nodes uint64
}

// New creates a Solver whose table has the given slot count. Sizes
// below one get the cache default.
func New(tableCapacity int) *Solver {
	return &Solver{table: cache.New(tableCapacity)}
}

// Solve returns the exact score of pos for the side to move. pos must
// be undecided, with no four in a row on the board; board.Parse only
// produces such positions. The previous solve's node counter is reset
// first.
func (s *Solver) Solve(pos board.Position) int {
	s.nodes = 0
	return s.negamax(pos, MinScore, MaxScore)
}

// NodeCount reports the positions visited by the most recent Solve or
// Analyze.
func (s *Solver) NodeCount() uint64 {
	return s.nodes
}

// ResetTable clears the transposition table, for starting an
// unrelated analysis session without stale bounds.
func (s *Solver) ResetTable() {
	s.table.Reset()
}

// TableStats returns the transposition table's counters.
func (s *Solver) TableStats() cache.Stats {
	return s.table.Stats()
}

// winScore is the value of winning with the next drop at the given
// ply count.
func winScore(plies int) int {
	return (board.TotalCells + 1 - plies) / 2
}

// negamax scores pos within the (alpha, beta) window. It returns the
// exact score when it falls inside the window, otherwise a bound on
// the same side of the window that the score is.
func (s *Solver) negamax(pos board.Position, alpha, beta int) int {
	s.nodes++

	// A winning drop decides the node without recursing. Center
	// columns win most often, so scan them first.
	for _, col := range board.ColumnOrder {
		if pos.CanDrop(col) && pos.WouldWin(col) {
			return winScore(pos.Plies())
		}
	}

	// With one empty cell or none, and no winning drop above, the
	// game runs out as a draw.
	if pos.Plies() >= board.TotalCells-1 {
		return 0
	}

	// A cached value is an upper bound proved the last time this
	// position was searched.
	if v := s.table.Get(pos.Key()); v != 0 {
		if ub := int(v) + MinScore - 1; ub < beta {
			beta = ub
			if beta <= alpha {
				return beta
			}
		}
	}

	// No immediate win means the soonest win is two plies out.
	if ub := (board.TotalCells - 1 - pos.Plies()) / 2; ub < beta {
		beta = ub
		if beta <= alpha {
			return beta
		}
	}

	for _, col := range board.ColumnOrder {
		if !pos.CanDrop(col) {
			continue
		}
		child := pos
		child.Drop(col)
		score := -s.negamax(child, -beta, -alpha)
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}

	// alpha is an upper bound here: no move reached beta, so the true
	// score is at most alpha. Offsetting by MinScore-1 keeps the
	// stored byte nonzero.
	s.table.Put(pos.Key(), int8(alpha-MinScore+1))
	return alpha
}
