package solver

import "github.com/fourscore/solver/internal/board"

// Outcome labels a score from the mover's point of view.
type Outcome string

const (
	Win  Outcome = "WIN"
	Lose Outcome = "LOSE"
	Draw Outcome = "DRAW"
)

// OutcomeOf classifies a score: positive means the side to move forces
// a win, negative a loss, zero a draw.
func OutcomeOf(score int) Outcome {
	switch {
	case score > 0:
		return Win
	case score < 0:
		return Lose
	default:
		return Draw
	}
}

// MovesLeft converts a score into the number of plies the game lasts
// under perfect play from a position with the given ply count. A
// winning mover ends the game on one of its own plies, so the count
// is odd; a losing mover is mated on an opponent ply, so it is even.
func MovesLeft(score, plies int) int {
	switch {
	case score > 0:
		left := board.TotalCells + 1 - 2*score - plies
		if left%2 == 0 {
			left++
		}
		return left
	case score < 0:
		left := board.TotalCells + 1 + 2*score - plies
		if left%2 != 0 {
			left++
		}
		return left
	default:
		return board.TotalCells - plies
	}
}

// Analysis holds the exact score of every legal reply in a position.
// Scores and Legal are indexed by 0-based column; Scores entries for
// unplayable columns are meaningless. Best is -1 and BestScore 0 when
// no column is playable.
type Analysis struct {
	Scores    [board.Width]int
	Legal     [board.Width]bool
	Best      int
	BestScore int
	Nodes     uint64
}

// Analyze solves every legal drop from pos and reports the per-column
// scores along with the best move. Ties go to the most central of the
// equal columns. The transposition table is kept from move to move,
// so scoring one column speeds up its siblings.
func (s *Solver) Analyze(pos board.Position) Analysis {
	s.nodes = 0
	a := Analysis{Best: -1, BestScore: MinScore - 1}
	for _, col := range board.ColumnOrder {
		if !pos.CanDrop(col) {
			continue
		}
		a.Legal[col] = true
		var score int
		if pos.WouldWin(col) {
			score = winScore(pos.Plies())
		} else {
			child := pos
			child.Drop(col)
			score = -s.negamax(child, MinScore, MaxScore)
		}
		a.Scores[col] = score
		if score > a.BestScore {
			a.BestScore = score
			a.Best = col
		}
	}
	if a.Best == -1 {
		a.BestScore = 0
	}
	a.Nodes = s.nodes
	return a
}
