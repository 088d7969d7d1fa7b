package web

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mogaika/scene_demo/scene"
)

const (
	pingPeriod   = time.Second * 30
	writeTimeout = time.Second * 40
	sendQueue    = 32
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.hub.unregister(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[web] ws write msg error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[web] ws write ping error: %v", err)
				return
			}
		}
	}
}

// readPump drains control frames so pongs and close are handled.
func (c *client) readPump() {
	defer c.conn.Close()
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}

// Hub keeps the last published frame and fans every new one out to websocket clients.
// Publish never blocks: a client with a full queue misses the frame.
type Hub struct {
	lock    sync.Mutex
	clients map[*client]bool
	last    scene.Snapshot
	lastMsg []byte
	has     bool
	dropped uint64
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

func (h *Hub) Publish(snap scene.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("[web] Failed to marshal frame %d: %v", snap.Frame, err)
		return
	}

	h.lock.Lock()
	defer h.lock.Unlock()
	h.last = snap
	h.lastMsg = data
	h.has = true
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropped++
		}
	}
}

func (h *Hub) Last() (scene.Snapshot, bool) {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.last, h.has
}

// Dropped counts frames skipped for slow clients.
func (h *Hub) Dropped() uint64 {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.dropped
}

func (h *Hub) Clients() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.clients[c] = true
	if h.lastMsg != nil {
		c.send <- h.lastMsg
	}
}

func (h *Hub) unregister(c *client) {
	h.lock.Lock()
	defer h.lock.Unlock()
	delete(h.clients, c)
}

func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] ws upgrade error: %v", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendQueue)}
	h.register(c)
	go c.writePump()
	go c.readPump()
}
