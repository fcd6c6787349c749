package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/pickup-games/live"
	"github.com/Dosada05/pickup-games/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin уже ограничен CORS на уровне роутера.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub         *live.Hub
	gameService services.GameService
}

func NewWebSocketHandler(hub *live.Hub, gs services.GameService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		gameService: gs,
	}
}

// ServeWs подключает клиента к ленте событий игры.
// Клиент подключается к /ws/games/{gameID}
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.gameService.GetGame(r.Context(), gameID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой.
		slog.WarnContext(r.Context(), "websocket upgrade failed", "game_id", gameID, "error", err)
		return
	}

	room := live.RoomForGame(gameID)
	h.hub.Attach(conn, room)
	slog.DebugContext(r.Context(), "websocket client attached", "room", room)
}
