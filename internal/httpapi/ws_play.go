package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is the envelope for both directions of a live game.
// Server messages carry type "state" with a PlayResponse payload or
// type "error" with a wsError payload; clients send type "move" with
// a moveRequest payload.
type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type wsError struct {
	Error string `json:"error"`
}

// wsPlay runs one live game per connection, optionally starting from
// the position a ?moves= line reaches. The session is registered with
// the manager for the lifetime of the socket, so it also shows up
// under /v1/game/{id}.
func (h *Handler) wsPlay(w http.ResponseWriter, r *http.Request) {
	g, err := h.newGameAt(r.URL.Query().Get("moves"))
	if err != nil {
		http.Error(w, "invalid moves: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer h.games.Remove(g.ID)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	log := h.log.With().Str("game_id", g.ID).Logger()
	log.Info().Msg("live game started")

	if err := writeWS(conn, "state", toPlayResponse(g, nil)); err != nil {
		return
	}

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Info().Err(err).Msg("live game closed")
			return
		}

		switch msg.Type {
		case "move":
			var req moveRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				if err := writeWS(conn, "error", wsError{Error: "bad payload"}); err != nil {
					return
				}
				continue
			}
			resp, err := h.applyMove(r.Context(), &g, req.Column)
			if err != nil {
				if err := writeWS(conn, "error", wsError{Error: err.Error()}); err != nil {
					return
				}
				continue
			}
			if err := writeWS(conn, "state", resp); err != nil {
				return
			}
		default:
			if err := writeWS(conn, "error", wsError{Error: "unknown message type: " + msg.Type}); err != nil {
				return
			}
		}
	}
}

func writeWS(conn *websocket.Conn, typ string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return conn.WriteJSON(wsMessage{Type: typ, Payload: data})
}
