package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fourscore/solver/internal/eval"
	"github.com/fourscore/solver/internal/game"
)

// drawFill fills all 42 cells without ever aligning four; prefixes of
// it reach near-full positions that solve in a handful of nodes.
const drawFill = "232332322323454554544545676776766767111111"

// tacticalFill leaves every column one short of full; the side to move
// wins at once in the third column.
const tacticalFill = "11111222225555566666373474474343737"

// newTestRouter backs the routes with a one-worker pool that is torn
// down with the test.
func newTestRouter(t *testing.T) (http.Handler, *game.Manager) {
	t.Helper()

	pool := eval.NewPool(eval.Config{Logger: zerolog.Nop(), NumWorkers: 1, TableSize: 1 << 12})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pool.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	games := game.NewManager()
	return NewRouter(zerolog.Nop(), pool, games), games
}

func doRequest(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, rd)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, target := range []string{"/healthz", "/readyz"} {
		w := doRequest(t, h, http.MethodGet, target, nil)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want %d", target, w.Code, http.StatusOK)
		}
		if got := w.Body.String(); got != "ok" {
			t.Errorf("GET %s body = %q, want %q", target, got, "ok")
		}
	}
}

func TestSolveEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)

	w := doRequest(t, h, http.MethodGet, "/v1/solve?moves=112233", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Error("X-Request-ID header missing")
	}

	var sr SolveResponse
	decodeBody(t, w, &sr)
	if sr.Moves != "112233" || sr.Plies != 6 {
		t.Errorf("Moves, Plies = %q, %d, want %q, 6", sr.Moves, sr.Plies, "112233")
	}
	if sr.SideToMove != "x" {
		t.Errorf("SideToMove = %q, want %q", sr.SideToMove, "x")
	}
	if sr.Score != 18 || sr.Outcome != "WIN" {
		t.Errorf("Score, Outcome = %d, %q, want 18, WIN", sr.Score, sr.Outcome)
	}
	if sr.MovesLeft != 1 {
		t.Errorf("MovesLeft = %d, want 1", sr.MovesLeft)
	}
	if sr.Nodes == 0 {
		t.Error("Nodes = 0, want > 0")
	}
}

func TestSolveEndpointBadMoves(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, moves := range []string{"8", "0", "x1", "1111111"} {
		w := doRequest(t, h, http.MethodGet, "/v1/solve?moves="+moves, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("moves=%q: status = %d, want %d", moves, w.Code, http.StatusBadRequest)
		}
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)

	w := doRequest(t, h, http.MethodGet, "/v1/analyze?moves="+tacticalFill, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var ar AnalyzeResponse
	decodeBody(t, w, &ar)
	if ar.SideToMove != "o" {
		t.Errorf("SideToMove = %q, want %q", ar.SideToMove, "o")
	}
	if ar.Best != 3 {
		t.Errorf("Best = %d, want 3", ar.Best)
	}
	if ar.Score != 4 || ar.Outcome != "WIN" {
		t.Errorf("Score, Outcome = %d, %q, want 4, WIN", ar.Score, ar.Outcome)
	}
	if ar.MovesLeft != 1 {
		t.Errorf("MovesLeft = %d, want 1", ar.MovesLeft)
	}
	if len(ar.Columns) != 7 {
		t.Fatalf("len(Columns) = %d, want 7", len(ar.Columns))
	}
	for i, cr := range ar.Columns {
		if cr.Column != i+1 {
			t.Errorf("Columns[%d].Column = %d, want %d", i, cr.Column, i+1)
		}
		if !cr.Playable {
			t.Errorf("Columns[%d].Playable = false, want true", i)
		}
	}
	if !ar.Columns[2].Winning {
		t.Error("Columns[2].Winning = false, want true")
	}
	if ar.Columns[2].Score != 4 || ar.Columns[2].Outcome != "WIN" {
		t.Errorf("Columns[2] = %+v, want score 4 WIN", ar.Columns[2])
	}
	if ar.Columns[3].Score != 0 || ar.Columns[3].Outcome != "DRAW" {
		t.Errorf("Columns[3] = %+v, want score 0 DRAW", ar.Columns[3])
	}
	if ar.Columns[0].Score != -3 || ar.Columns[0].Outcome != "LOSE" {
		t.Errorf("Columns[0] = %+v, want score -3 LOSE", ar.Columns[0])
	}
}

func TestStatsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)

	if w := doRequest(t, h, http.MethodGet, "/v1/solve?moves=112233", nil); w.Code != http.StatusOK {
		t.Fatalf("solve status = %d", w.Code)
	}

	w := doRequest(t, h, http.MethodGet, "/v1/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var st StatsResponse
	decodeBody(t, w, &st)
	if st.Pool.Workers != 1 {
		t.Errorf("Pool.Workers = %d, want 1", st.Pool.Workers)
	}
	if st.Pool.Solved != 1 {
		t.Errorf("Pool.Solved = %d, want 1", st.Pool.Solved)
	}
	if st.Games != 0 {
		t.Errorf("Games = %d, want 0", st.Games)
	}
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestRouter(t)

	w := doRequest(t, h, http.MethodOptions, "/v1/solve", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
	}
}
