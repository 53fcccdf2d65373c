package events

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/VideoCall/internal/core"
	"github.com/dkeye/VideoCall/internal/domain"
)

func newHubServer(t *testing.T) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub(4096, 5*time.Second)
	r := gin.New()
	r.GET("/events", hub.ServeWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func readSnapshot(t *testing.T, ws *websocket.Conn) domain.Snapshot {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		mt, data, err := ws.ReadMessage()
		require.NoError(t, err)
		if mt != websocket.TextMessage {
			continue
		}
		var msg struct {
			Type    string          `json:"type"`
			Session domain.Snapshot `json:"session"`
		}
		require.NoError(t, json.Unmarshal(data, &msg))
		require.Equal(t, "session", msg.Type)
		return msg.Session
	}
}

func TestHub_Broadcast(t *testing.T) {
	t.Parallel()
	hub, url := newHubServer(t)

	a, b := dial(t, url), dial(t, url)
	require.Eventually(t, func() bool { return hub.Len() == 2 }, time.Second, 5*time.Millisecond)

	hub.OnSessionChanged(domain.Snapshot{ID: "s1", Channel: "demo", State: domain.StateActive})

	for _, ws := range []*websocket.Conn{a, b} {
		snap := readSnapshot(t, ws)
		assert.Equal(t, "s1", snap.ID)
		assert.Equal(t, domain.StateActive, snap.State)
		assert.Equal(t, domain.ChannelName("demo"), snap.Channel)
	}
}

func TestHub_ReplaysLatest(t *testing.T) {
	t.Parallel()
	hub, url := newHubServer(t)

	hub.OnSessionChanged(domain.Snapshot{ID: "s1", State: domain.StateAwaitingPermissions})
	hub.OnSessionChanged(domain.Snapshot{ID: "s1", State: domain.StateTerminated, Reason: "ended by user"})

	snap := readSnapshot(t, dial(t, url))
	assert.Equal(t, domain.StateTerminated, snap.State)
	assert.Equal(t, "ended by user", snap.Reason)
}

func TestHub_ReplayNeverOvertakesBroadcast(t *testing.T) {
	t.Parallel()
	hub, url := newHubServer(t)

	const last = 50
	hub.OnSessionChanged(domain.Snapshot{ID: "0"})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= last; i++ {
			hub.OnSessionChanged(domain.Snapshot{ID: strconv.Itoa(i)})
			time.Sleep(time.Millisecond)
		}
	}()

	ws := dial(t, url)
	prev := -1
	for prev < last {
		n, err := strconv.Atoi(readSnapshot(t, ws).ID)
		require.NoError(t, err)
		require.Greater(t, n, prev, "snapshots must arrive in order")
		prev = n
	}
	<-done
}

func TestHub_ClientGone(t *testing.T) {
	t.Parallel()
	hub, url := newHubServer(t)

	ws := dial(t, url)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, ws.Close())
	require.Eventually(t, func() bool { return hub.Len() == 0 }, 2*time.Second, 5*time.Millisecond)

	assert.NotPanics(t, func() { hub.OnSessionChanged(domain.Snapshot{ID: "s2"}) })
}

func TestHub_Close(t *testing.T) {
	t.Parallel()
	hub, url := newHubServer(t)

	ws := dial(t, url)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 5*time.Millisecond)
	hub.Close()
	assert.Zero(t, hub.Len())

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := ws.ReadMessage()
	assert.Error(t, err)
}

func TestClient_Backpressure(t *testing.T) {
	t.Parallel()
	c := &client{id: "c", send: make(chan core.Frame, 1)}
	require.NoError(t, c.TrySend([]byte("a")))
	assert.ErrorIs(t, c.TrySend([]byte("b")), ErrBackpressure)
}
