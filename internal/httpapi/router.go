// Package httpapi serves position evaluations and live games over HTTP.
package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fourscore/solver/internal/board"
	"github.com/fourscore/solver/internal/eval"
	"github.com/fourscore/solver/internal/game"
)

// Handler serves the solver API on top of the solve pool and the
// session manager.
type Handler struct {
	pool  *eval.Pool
	games *game.Manager
	log   zerolog.Logger
}

// NewRouter wires all routes and the middleware chain.
func NewRouter(log zerolog.Logger, pool *eval.Pool, games *game.Manager) http.Handler {
	h := &Handler{
		pool:  pool,
		games: games,
		log:   log,
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", http.HandlerFunc(h.health))
	mux.Handle("/readyz", http.HandlerFunc(h.health))
	mux.Handle("/v1/solve", http.HandlerFunc(h.solve))
	mux.Handle("/v1/analyze", http.HandlerFunc(h.analyze))
	mux.Handle("/v1/stats", http.HandlerFunc(h.stats))
	mux.Handle("/v1/game", http.HandlerFunc(h.gameCreate))
	mux.Handle("/v1/game/", http.HandlerFunc(h.gameByID))
	mux.Handle("/v1/ws/play", http.HandlerFunc(h.wsPlay))

	// pprof endpoints
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return CORS(RequestID(AccessLog(log, mux)))
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// solve scores the position given by the moves query parameter. An
// empty parameter scores the empty board.
func (h *Handler) solve(w http.ResponseWriter, r *http.Request) {
	moves := r.URL.Query().Get("moves")
	pos, err := board.Parse(moves)
	if err != nil {
		http.Error(w, "invalid moves: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.pool.Solve(r.Context(), pos)
	if err != nil {
		h.log.Error().Err(err).Str("rid", GetRequestID(r.Context())).Msg("solve")
		http.Error(w, "solve failed", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, toSolveResponse(moves, pos, res))
}

// analyze scores every legal reply in the position given by the moves
// query parameter.
func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	moves := r.URL.Query().Get("moves")
	pos, err := board.Parse(moves)
	if err != nil {
		http.Error(w, "invalid moves: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.pool.Analyze(r.Context(), pos)
	if err != nil {
		h.log.Error().Err(err).Str("rid", GetRequestID(r.Context())).Msg("analyze")
		http.Error(w, "analyze failed", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, toAnalyzeResponse(moves, pos, res))
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, StatsResponse{
		Pool:  h.pool.GetStatus(),
		Games: h.games.Len(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// splitPath splits a URL path into its non-empty segments.
func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
}
