package httpapi

import (
	"time"

	"github.com/fourscore/solver/internal/board"
	"github.com/fourscore/solver/internal/eval"
	"github.com/fourscore/solver/internal/game"
	"github.com/fourscore/solver/internal/solver"
)

// SolveResponse is the JSON-friendly result of scoring one position.
// Score is from the side to move: positive means it forces a win,
// negative a loss, zero a draw.
type SolveResponse struct {
	Moves      string `json:"moves"`
	Plies      int    `json:"plies"`
	SideToMove string `json:"side_to_move"`
	Score      int    `json:"score"`
	Outcome    string `json:"outcome"`
	MovesLeft  int    `json:"moves_left"`
	Nodes      uint64 `json:"nodes"`
	TimeMs     int64  `json:"time_ms"`
}

// ColumnResponse scores one reply. Column is 1-based; Score and
// Outcome are meaningful only when Playable.
type ColumnResponse struct {
	Column   int    `json:"column"`
	Playable bool   `json:"playable"`
	Winning  bool   `json:"winning"`
	Score    int    `json:"score"`
	Outcome  string `json:"outcome"`
}

// AnalyzeResponse scores every reply in one position. Best is 1-based
// and 0 when the position has no legal move.
type AnalyzeResponse struct {
	Moves      string           `json:"moves"`
	Plies      int              `json:"plies"`
	SideToMove string           `json:"side_to_move"`
	Best       int              `json:"best"`
	Score      int              `json:"score"`
	Outcome    string           `json:"outcome"`
	MovesLeft  int              `json:"moves_left"`
	Nodes      uint64           `json:"nodes"`
	TimeMs     int64            `json:"time_ms"`
	Columns    []ColumnResponse `json:"columns"`
}

// StatsResponse is the /v1/stats payload.
type StatsResponse struct {
	Pool  eval.Status `json:"pool"`
	Games int         `json:"games"`
}

// GameResponse is the JSON-friendly view of a play session. Board
// rows run top down; 0 is empty, 1 the first player, 2 the second.
type GameResponse struct {
	ID         string    `json:"id"`
	Moves      string    `json:"moves"`
	Plies      int       `json:"plies"`
	SideToMove string    `json:"side_to_move"`
	Status     string    `json:"status"`
	Board      [][]int   `json:"board"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EngineMoveResponse reports the engine's reply to a player move.
// Column is 1-based; Score and Outcome are from the engine's side.
type EngineMoveResponse struct {
	Column  int    `json:"column"`
	Score   int    `json:"score"`
	Outcome string `json:"outcome"`
	Nodes   uint64 `json:"nodes"`
	TimeMs  int64  `json:"time_ms"`
}

// PlayResponse is the result of one move exchange.
type PlayResponse struct {
	Game   GameResponse        `json:"game"`
	Engine *EngineMoveResponse `json:"engine,omitempty"`
}

func toSolveResponse(moves string, pos board.Position, res eval.Result) SolveResponse {
	return SolveResponse{
		Moves:      moves,
		Plies:      pos.Plies(),
		SideToMove: sideString(pos.SideToMove()),
		Score:      res.Score,
		Outcome:    string(res.Outcome),
		MovesLeft:  solver.MovesLeft(res.Score, pos.Plies()),
		Nodes:      res.Nodes,
		TimeMs:     res.Elapsed.Milliseconds(),
	}
}

func toAnalyzeResponse(moves string, pos board.Position, res eval.Result) AnalyzeResponse {
	a := res.Analysis
	cols := make([]ColumnResponse, 0, board.Width)
	for col := 0; col < board.Width; col++ {
		cr := ColumnResponse{Column: col + 1, Playable: a.Legal[col]}
		if a.Legal[col] {
			cr.Winning = pos.WouldWin(col)
			cr.Score = a.Scores[col]
			cr.Outcome = string(solver.OutcomeOf(a.Scores[col]))
		}
		cols = append(cols, cr)
	}

	return AnalyzeResponse{
		Moves:      moves,
		Plies:      pos.Plies(),
		SideToMove: sideString(pos.SideToMove()),
		Best:       a.Best + 1,
		Score:      a.BestScore,
		Outcome:    string(res.Outcome),
		MovesLeft:  solver.MovesLeft(a.BestScore, pos.Plies()),
		Nodes:      res.Nodes,
		TimeMs:     res.Elapsed.Milliseconds(),
		Columns:    cols,
	}
}

func toGameResponse(g game.Game) GameResponse {
	return GameResponse{
		ID:         g.ID,
		Moves:      g.Moves,
		Plies:      g.Pos.Plies(),
		SideToMove: sideString(g.Pos.SideToMove()),
		Status:     gameStatus(g),
		Board:      boardGrid(g.Pos),
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

func toPlayResponse(g game.Game, engine *EngineMoveResponse) PlayResponse {
	return PlayResponse{Game: toGameResponse(g), Engine: engine}
}

func sideString(side int) string {
	if side == board.SecondPlayer {
		return "o"
	}
	return "x"
}

func gameStatus(g game.Game) string {
	switch {
	case !g.Over:
		return "ongoing"
	case g.Winner == board.FirstPlayer:
		return "x_won"
	case g.Winner == board.SecondPlayer:
		return "o_won"
	default:
		return "draw"
	}
}

// boardGrid renders the position as rows top down for UI consumption.
func boardGrid(pos board.Position) [][]int {
	grid := make([][]int, board.Height)
	for r := 0; r < board.Height; r++ {
		row := make([]int, board.Width)
		for c := 0; c < board.Width; c++ {
			row[c] = pos.CellAt(c, board.Height-1-r)
		}
		grid[r] = row
	}
	return grid
}
