package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// event is one navigation state change pushed to watch clients.
type event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  64 * 1024,
	WriteBufferSize: 64 * 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // CORS is enforced at the router
}

// hub fans navigation events out to websocket watchers. Slow clients drop
// events instead of stalling mutations.
type hub struct {
	mu      sync.Mutex
	clients map[*hubClient]struct{}
}

type hubClient struct {
	out chan []byte
}

func newHub() *hub {
	return &hub{clients: make(map[*hubClient]struct{})}
}

func (h *hub) add(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *hub) remove(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) broadcast(evt event) {
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.out <- b:
		default:
			// Watcher is not keeping up, skip this event for it.
		}
	}
}

// handleWatch upgrades the connection and streams navigation events until
// the client hangs up.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	client := &hubClient{out: make(chan []byte, 64)}
	s.watchers.add(client)

	writeErr := make(chan error, 1)
	go func() {
		for b := range client.out {
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				writeErr <- err
				return
			}
		}
		writeErr <- nil
	}()

	// Reader loop: watchers send nothing meaningful, reading just detects
	// the hangup and answers pings.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	// Broadcast holds the hub lock while sending, so after remove returns
	// nothing can write to the outbox and closing it is safe.
	s.watchers.remove(client)
	close(client.out)
	select {
	case <-writeErr:
	case <-time.After(500 * time.Millisecond):
	}
}
