package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pvera/gridpath/pathfind/grid"
	"github.com/pvera/gridpath/pathfind/search"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		return true
	},
}

// Message represents a WebSocket frame sent to replay viewers
type Message struct {
	RunID string       `json:"run_id"`
	Event string       `json:"event"` // "expand", "path", "done", "run_created"
	Index int          `json:"index,omitempty"`
	State *grid.State  `json:"state,omitempty"`
	Path  []grid.State `json:"path,omitempty"`
	Data  interface{}  `json:"data,omitempty"`
}

// Client represents a WebSocket client
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	runID string
}

// Hub maintains the set of active clients and broadcasts replay frames
type Hub struct {
	// Registered clients by run ID
	runs map[string]map[*Client]bool

	// Outbound frames to clients
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		runs:       make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, runID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, 256),
		runID: runID,
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// BroadcastEvent sends a custom event to all clients watching a run
func (h *Hub) BroadcastEvent(runID string, event string, data interface{}) {
	h.broadcast <- &Message{
		RunID: runID,
		Event: event,
		Data:  data,
	}
}

// Replay streams a finished run's expansion trace to the run's viewers, one
// frame per expanded state, then the final path and a done frame. It blocks
// for len(trace) intervals, so callers usually run it in a goroutine.
func (h *Hub) Replay(runID string, result *search.Result, interval time.Duration) {
	for i := range result.Trace {
		state := result.Trace[i]
		h.broadcast <- &Message{
			RunID: runID,
			Event: "expand",
			Index: i,
			State: &state,
		}
		if interval > 0 {
			time.Sleep(interval)
		}
	}

	if result.Found {
		h.broadcast <- &Message{
			RunID: runID,
			Event: "path",
			Path:  result.Path,
		}
	}

	h.broadcast <- &Message{
		RunID: runID,
		Event: "done",
		Data: map[string]interface{}{
			"found":        result.Found,
			"cost":         result.Cost,
			"expanded":     result.Expanded,
			"frontier_max": result.FrontierMax,
		},
	}
}

// registerClient adds a client to a run's viewer set
func (h *Hub) registerClient(client *Client) {
	if h.runs[client.runID] == nil {
		h.runs[client.runID] = make(map[*Client]bool)
	}
	h.runs[client.runID][client] = true

	log.Printf("Client registered for run %s (total clients: %d)",
		client.runID, len(h.runs[client.runID]))
}

// unregisterClient removes a client from a run's viewer set
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.runs[client.runID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Clean up empty runs
			if len(clients) == 0 {
				delete(h.runs, client.runID)
			}

			log.Printf("Client unregistered from run %s (remaining clients: %d)",
				client.runID, len(clients))
		}
	}
}

// broadcastMessage sends a frame to all clients watching a run
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	if clients, ok := h.runs[message.RunID]; ok {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				// Client's send channel is full, close it
				h.unregisterClient(client)
			}
		}
	}
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Viewers don't send anything we act on; just keep the connection
		// alive.
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
