package rtc

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/dkeye/VideoCall/internal/core"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog"
)

var ErrBackpressure = errors.New("backpressure")

// Client to server messages.
type joinMessage struct {
	Type    string `json:"type"`
	AppID   string `json:"app_id"`
	Channel string `json:"channel"`
	Token   string `json:"token,omitempty"`
	Info    string `json:"info,omitempty"`
	UID     uint32 `json:"uid"`
}

type sdpMessage struct {
	Type string `json:"type"`
	SDP  string `json:"sdp"`
}

type candidateMessage struct {
	Type      string                  `json:"type"`
	Candidate webrtc.ICECandidateInit `json:"candidate"`
}

type muteMessage struct {
	Type  string `json:"type"`
	Muted bool   `json:"muted"`
}

type typeOnly struct {
	Type string `json:"type"`
}

// serverMessage is the union of everything the signaling server sends.
type serverMessage struct {
	Type      string                   `json:"type"`
	Channel   string                   `json:"channel"`
	UID       uint32                   `json:"uid"`
	Muted     bool                     `json:"muted"`
	Reason    string                   `json:"reason"`
	SDP       string                   `json:"sdp"`
	Candidate *webrtc.ICECandidateInit `json:"candidate"`
	Error     string                   `json:"error"`
}

// signalConn is the websocket link to the signaling server.
type signalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

var _ core.SignalConnection = (*signalConn)(nil)

func dialSignal(ctx context.Context, url string) (*signalConn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	ws, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &signalConn{conn: ws, send: make(chan core.Frame, 32)}, nil
}

func (c *signalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	select {
	case c.send <- f:
		return nil
	default:
		return ErrBackpressure
	}
}

// Close stops accepting frames. Frames already queued are still written
// before writePump closes the socket.
func (c *signalConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *signalConn) sendJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.TrySend(b)
}

func (c *signalConn) writePump(logger zerolog.Logger) {
	defer func() {
		_ = c.conn.Close()
	}()
	for data := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
			logger.Error().Err(err).Msg("writePump set deadline")
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.Error().Err(err).Msg("writePump write error")
			return
		}
	}
	logger.Debug().Msg("writePump channel closed")
}

// readPump decodes server messages until the connection fails. It returns
// the read error, or nil when ctx ended first.
func (c *signalConn) readPump(ctx context.Context, logger zerolog.Logger, handle func(serverMessage)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Error().Err(err).Msg("bad json")
			continue
		}
		handle(msg)
	}
}
