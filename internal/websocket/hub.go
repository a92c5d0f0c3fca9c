package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Message types pushed to the presentation layer so it can re-render the
// affected view after a mutation.
const (
	MessageTypeStockUpdate    = "stock_update"
	MessageTypeHistoryUpdate  = "history_update"
	MessageTypeSnapshotImport = "snapshot_import"
)

// Message is one event on the change feed.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
	Time int64  `json:"time"`
}

// Client represents one connected presentation client.
type Client struct {
	ID   string
	Hub  *Hub
	Conn *websocket.Conn
	Send chan Message
}

// Hub maintains the set of connected clients and fans change events out to
// all of them. There is a single user, so every event goes to every client.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan Message

	mutex  sync.RWMutex
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Message),
		logger:     logger,
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case message := <-h.Broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.Clients[client] = true
	h.logger.Info("websocket client connected",
		zap.String("client", client.ID),
		zap.Int("total", len(h.Clients)))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.Clients[client]; ok {
		delete(h.Clients, client)
		close(client.Send)
		h.logger.Info("websocket client disconnected",
			zap.String("client", client.ID),
			zap.Int("total", len(h.Clients)))
	}
}

func (h *Hub) broadcastMessage(message Message) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.Clients {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(h.Clients, client)
		}
	}
}

// StockChanged notifies clients that the stock collection changed.
func (h *Hub) StockChanged() {
	h.Broadcast <- Message{Type: MessageTypeStockUpdate, Time: time.Now().Unix()}
}

// HistoryChanged notifies clients that the purchase log changed.
func (h *Hub) HistoryChanged() {
	h.Broadcast <- Message{Type: MessageTypeHistoryUpdate, Time: time.Now().Unix()}
}

// SnapshotImported notifies clients that the whole state was replaced.
func (h *Hub) SnapshotImported() {
	h.Broadcast <- Message{Type: MessageTypeSnapshotImport, Time: time.Now().Unix()}
}

// ConnectedClients returns the number of active connections.
func (h *Hub) ConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.Clients)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The service binds locally for a single household user.
		return true
	},
}

// ServeWS upgrades an HTTP request and attaches the client to the hub.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		Hub:  h,
		Conn: conn,
		Send: make(chan Message, 256),
	}

	h.Register <- client

	go client.writePump()
	go client.readPump()
}
