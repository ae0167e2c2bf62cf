package websocket

import (
	"encoding/json"
	"sync"

	"github.com/veryfy/veryfy-backend/pkg/logger"
)

// PushMessage is the payload pushed to a dashboard session.
type PushMessage struct {
	Type    string      `json:"type"` // notification type, e.g. scam_alert
	Payload interface{} `json:"payload"`
}

// Client is one connected dashboard session.
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID uint
	Send   chan []byte
}

// Hub tracks connected dashboard sessions and pushes alerts to them. A user
// may hold several sessions at once (multiple tabs or devices).
type Hub struct {
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": h.sessionCount(client.UserID),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clientList, ok := h.clients[client.UserID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					}
				}

				if len(newList) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = newList
				}

				close(client.Send)
			}
			h.mu.Unlock()
			logger.Debug("WebSocket client unregistered", map[string]interface{}{
				"user_id": client.UserID,
			})
		}
	}
}

// Register queues a new session.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// SendToUser pushes a message to every session of one user. Sessions with a
// full send buffer are skipped; the in-app feed is the durable copy.
func (h *Hub) SendToUser(userID uint, msg PushMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("Failed to marshal push message", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
			logger.Warn("Dropping push message, client buffer full", map[string]interface{}{
				"user_id": userID,
			})
		}
	}
}

// ConnectedUsers returns how many distinct users hold at least one session.
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) sessionCount(userID uint) int {
	return len(h.clients[userID])
}
