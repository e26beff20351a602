package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fourscore/solver/internal/board"
	"github.com/fourscore/solver/internal/game"
)

// moveRequest is a player move. Column is 1-based to match move
// string notation.
type moveRequest struct {
	Column int `json:"column"`
}

// createRequest optionally starts the game mid-line.
type createRequest struct {
	Moves string `json:"moves"`
}

func (h *Handler) gameCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	g, err := h.newGameAt(req.Moves)
	if err != nil {
		http.Error(w, "invalid moves: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.log.Info().
		Str("rid", GetRequestID(r.Context())).
		Str("game_id", g.ID).
		Int("plies", g.Pos.Plies()).
		Msg("game created")
	writeJSON(w, toGameResponse(g))
}

// newGameAt registers a session at the position the moves reach. Parse
// rejects lines through a completed four, so the game is either live
// or a drawn full board.
func (h *Handler) newGameAt(moves string) (game.Game, error) {
	pos, err := board.Parse(moves)
	if err != nil {
		return game.Game{}, err
	}
	g := h.games.New()
	g.Pos = pos
	g.Moves = moves
	g.Over = pos.IsFull()
	if err := h.games.Update(g); err != nil {
		return game.Game{}, err
	}
	return g, nil
}

// gameByID dispatches /v1/game/{id} and /v1/game/{id}/move.
func (h *Handler) gameByID(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path)
	if len(parts) < 3 {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}
	id := parts[2]

	if len(parts) == 4 && parts[3] == "move" {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.gameMove(w, r, id)
		return
	}
	if len(parts) != 3 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		g, err := h.games.Get(id)
		if err != nil {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}
		writeJSON(w, toGameResponse(g))
	case http.MethodDelete:
		h.games.Remove(id)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) gameMove(w http.ResponseWriter, r *http.Request, id string) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	g, err := h.games.Get(id)
	if err != nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	resp, err := h.applyMove(r.Context(), &g, req.Column)
	switch {
	case err == nil:
		writeJSON(w, resp)
	case errors.Is(err, board.ErrInvalidColumn),
		errors.Is(err, board.ErrColumnFull),
		errors.Is(err, board.ErrGameOver):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, game.ErrNotFound):
		http.Error(w, "game not found", http.StatusNotFound)
	default:
		h.log.Error().Err(err).Str("rid", GetRequestID(r.Context())).Str("game_id", id).Msg("move")
		http.Error(w, "move failed", http.StatusServiceUnavailable)
	}
}

// applyMove plays the 1-based player column, lets the engine answer
// with its best reply while the game is still open, and stores the
// session back.
func (h *Handler) applyMove(ctx context.Context, g *game.Game, column int) (PlayResponse, error) {
	if err := g.Apply(column - 1); err != nil {
		return PlayResponse{}, err
	}

	var engine *EngineMoveResponse
	if !g.Over {
		res, err := h.pool.Analyze(ctx, g.Pos)
		if err != nil {
			return PlayResponse{}, err
		}
		best := res.Analysis.Best
		if err := g.Apply(best); err != nil {
			return PlayResponse{}, err
		}
		engine = &EngineMoveResponse{
			Column:  best + 1,
			Score:   res.Score,
			Outcome: string(res.Outcome),
			Nodes:   res.Nodes,
			TimeMs:  res.Elapsed.Milliseconds(),
		}
	}

	if err := h.games.Update(*g); err != nil {
		return PlayResponse{}, err
	}
	return toPlayResponse(*g, engine), nil
}
