package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"quiz-battle-service/internal/app"
)

// WSHandler upgrades HTTP requests to websockets and wires them into the
// battle channel: outbound events arrive via the hub, inbound battle_answer
// messages feed the answer-submission path.
type WSHandler struct {
	hub      *Hub
	service  *app.BattleService
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *Hub, service *app.BattleService) *WSHandler {
	return &WSHandler{
		hub:     hub,
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type     string `json:"type"`
	BattleID string `json:"battleId"`
	Username string `json:"username"`
	Correct  bool   `json:"correct"`
}

// ServeWS handles one client connection. Malformed payloads and events for
// unknown battles are logged and dropped; neither closes the connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade failed")
		return
	}

	clientID := h.hub.Register(conn)
	defer h.hub.Deregister(clientID)

	log.Info().Str("client_id", clientID).Msg("battle client connected")
	defer log.Info().Str("client_id", clientID).Msg("battle client disconnected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Str("client_id", clientID).Msg("malformed battle message")
			continue
		}

		switch msg.Type {
		case app.EventBattleAnswer:
			if err := h.service.SubmitAnswer(r.Context(), msg.BattleID, msg.Username, msg.Correct); err != nil {
				log.Debug().Err(err).
					Str("battle_id", msg.BattleID).
					Str("username", msg.Username).
					Msg("battle answer ignored")
			}
		default:
			log.Debug().Str("type", msg.Type).Msg("unknown battle message type")
		}
	}
}
