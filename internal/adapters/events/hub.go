// Package events streams session snapshots to browsers over websocket.
package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/VideoCall/internal/core"
	"github.com/dkeye/VideoCall/internal/domain"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

type message struct {
	Type    string           `json:"type"`
	Session *domain.Snapshot `json:"session"`
}

// Hub implements core.SessionObserver by broadcasting every snapshot to the
// connected clients. A client that cannot keep up is disconnected.
type Hub struct {
	readLimit  int64
	pingPeriod time.Duration
	logger     zerolog.Logger

	mu      sync.RWMutex
	clients map[string]*client
	last    core.Frame
	closed  bool
}

var _ core.SessionObserver = (*Hub)(nil)

func NewHub(readLimit int64, pingPeriod time.Duration) *Hub {
	if pingPeriod <= 0 {
		pingPeriod = 54 * time.Second
	}
	return &Hub{
		readLimit:  readLimit,
		pingPeriod: pingPeriod,
		logger:     log.With().Str("module", "adapters.events").Logger(),
		clients:    make(map[string]*client),
	}
}

func (h *Hub) OnSessionChanged(snap domain.Snapshot) {
	frame, err := json.Marshal(message{Type: "session", Session: &snap})
	if err != nil {
		h.logger.Error().Err(err).Msg("marshal snapshot")
		return
	}

	h.mu.Lock()
	h.last = frame
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		if err := c.TrySend(frame); err != nil {
			h.logger.Warn().Err(err).Str("client", c.id).Msg("dropping slow client")
			h.remove(c)
		}
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()

	for _, c := range clients {
		c.Close()
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request and replays the latest snapshot first.
func (h *Hub) ServeWS(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("ws upgrade")
		return
	}

	id := c.GetString("client_token")
	if id == "" {
		id = uuid.NewString()
	}
	cl := &client{id: id + "/" + uuid.NewString()[:8], conn: ws, send: make(chan core.Frame, 32)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = ws.Close()
		return
	}
	// Queued before registration so no broadcast can overtake it.
	if h.last != nil {
		_ = cl.TrySend(h.last)
	}
	h.clients[cl.id] = cl
	h.mu.Unlock()

	h.logger.Info().Str("client", cl.id).Msg("events client connected")

	go cl.writePump(h.pingPeriod, h.logger)
	go h.readPump(cl)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if cur, ok := h.clients[c.id]; ok && cur == c {
		delete(h.clients, c.id)
	}
	h.mu.Unlock()
	c.Close()
}

// readPump only serves control frames; clients are not expected to send.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.logger.Info().Str("client", c.id).Msg("events client disconnected")
		h.remove(c)
	}()

	c.conn.SetReadLimit(h.readLimit)
	wait := h.pingPeriod * 10 / 9
	_ = c.conn.SetReadDeadline(time.Now().Add(wait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

var _ core.SignalConnection = (*client)(nil)

func (c *client) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- f:
		return nil
	default:
		return ErrBackpressure
	}
}

func (c *client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}

func (c *client) writePump(pingPeriod time.Duration, logger zerolog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Debug().Err(err).Str("client", c.id).Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
