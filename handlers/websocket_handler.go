package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/sportsfest/sportsday-live/realtime"
	"github.com/sportsfest/sportsday-live/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// В продакшене здесь должна быть проверка Origin,
		// чтобы разрешать подключения только с доверенных доменов.
		return true
	},
}

type WebSocketHandler struct {
	hub     *realtime.Hub
	service services.EventService
}

func NewWebSocketHandler(hub *realtime.Hub, service services.EventService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:     hub,
		service: service,
	}
}

// ServeWs обрабатывает WebSocket-подключение зрителя к конкретной игре.
// Клиент подключается к /ws/games/{gameID}; id комнаты совпадает с id игры.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if gameID == "" {
		http.Error(w, "Missing gameID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection for game %s: %v", gameID, err)
		return
	}

	client := &realtime.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: gameID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	// Сразу после регистрации клиент получает текущие снимки своей игры,
	// как при подписке на удалённое хранилище.
	h.sendInitial(client, gameID)
}

func (h *WebSocketHandler) sendInitial(client *realtime.Client, gameID string) {
	initial := []realtime.Message{
		{Type: "SCHEDULES_UPDATED", GameID: gameID, Payload: h.service.Schedules(gameID)},
		{Type: "RESULTS_UPDATED", GameID: gameID, Payload: h.service.Results(gameID)},
		{Type: "LIVE_UPDATED", Payload: h.service.AllLive()},
		{Type: "BRACKET_UPDATED", GameID: gameID, Payload: h.service.BracketFor(gameID)},
	}
	for _, msg := range initial {
		bytes, err := json.Marshal(msg)
		if err != nil {
			log.Printf("Failed to marshal initial %s message for game %s: %v", msg.Type, gameID, err)
			continue
		}
		client.Mu.Lock()
		if !client.IsClosed {
			select {
			case client.Send <- bytes:
			default:
			}
		}
		client.Mu.Unlock()
	}
}
