// Package realtime раздаёт обновления состояния турнира подключённым
// зрителям по WebSocket. Клиенты группируются в комнаты по id игры.
package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Message — конверт исходящего сообщения.
type Message struct {
	Type    string      `json:"type"`              // "SCHEDULES_UPDATED", "RESULTS_UPDATED", "LIVE_UPDATED", "BRACKET_UPDATED"
	Payload interface{} `json:"payload"`
	GameID  string      `json:"game_id,omitempty"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	Room     string
	IsClosed bool
	Mu       sync.Mutex
}

type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			log.Printf("Client registered to room %s. Total clients in room: %d", client.Room, len(h.rooms[client.Room]))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; ok {
				if _, okClient := h.rooms[client.Room][client]; okClient {
					client.Mu.Lock()
					if !client.IsClosed {
						close(client.Send)
						client.IsClosed = true
					}
					client.Mu.Unlock()
					delete(h.rooms[client.Room], client)
					if len(h.rooms[client.Room]) == 0 {
						delete(h.rooms, client.Room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRoom отправляет сообщение всем клиентам комнаты.
func (h *Hub) BroadcastToRoom(room string, message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.broadcastLocked(h.rooms[room], message)
}

// BroadcastAll отправляет сообщение клиентам всех комнат. Используется для
// набора live-флагов, общего для всех игр.
func (h *Hub) BroadcastAll(message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, roomClients := range h.rooms {
		h.broadcastLocked(roomClients, message)
	}
}

func (h *Hub) broadcastLocked(clients map[*Client]bool, message Message) {
	if len(clients) == 0 {
		return
	}
	messageBytes, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshalling %s message: %v", message.Type, err)
		return
	}
	for client := range clients {
		client.Mu.Lock()
		if client.IsClosed {
			client.Mu.Unlock()
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			// Канал клиента полон — пропускаем, клиент получит
			// актуальное состояние со следующим снимком.
		}
		client.Mu.Unlock()
	}
}

// NotifyGame и NotifyAll реализуют services.Notifier.

func (h *Hub) NotifyGame(gameID string, event string, payload interface{}) {
	h.BroadcastToRoom(gameID, Message{Type: event, Payload: payload, GameID: gameID})
}

func (h *Hub) NotifyAll(event string, payload interface{}) {
	h.BroadcastAll(Message{Type: event, Payload: payload})
}

func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
		c.Mu.Lock()
		c.IsClosed = true
		c.Mu.Unlock()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		// Входящие сообщения зрителей игнорируются: канал только на отдачу.
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Mu.Lock()
		c.IsClosed = true
		c.Mu.Unlock()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
