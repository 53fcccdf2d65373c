package orch

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/VideoCall/internal/app"
	"github.com/dkeye/VideoCall/internal/core"
	"github.com/dkeye/VideoCall/internal/domain"
)

// Manager keeps at most one live session. A new session may start once the
// previous one terminated; the permission gate is shared so capabilities
// granted earlier are not prompted again.
type Manager struct {
	ctx       context.Context
	engine    core.MediaEngine
	gate      *app.PermissionGate
	opts      Options
	observers []core.SessionObserver

	mu      sync.RWMutex
	current *SessionController
}

func NewManager(ctx context.Context, engine core.MediaEngine, gate *app.PermissionGate, opts Options, observers ...core.SessionObserver) *Manager {
	return &Manager{
		ctx:       ctx,
		engine:    engine,
		gate:      gate,
		opts:      opts,
		observers: observers,
	}
}

// Start creates a controller for channel and begins its permission flow.
func (m *Manager) Start(channel domain.ChannelName) (*SessionController, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil && m.current.State() != domain.StateTerminated {
		return nil, domain.ErrSessionExists
	}

	c := NewSessionController(m.engine, m.gate, m.opts, m.observers...)
	go c.Run(m.ctx)
	if err := c.Start(channel); err != nil {
		_ = c.End()
		return nil, err
	}
	m.current = c
	log.Info().Str("module", "orch").Str("session", c.ID()).Str("channel", channel.String()).Msg("session started")
	return c, nil
}

// Current returns the latest session, terminated or not.
func (m *Manager) Current() (*SessionController, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.current != nil
}

// Shutdown ends the current session and waits for its teardown.
func (m *Manager) Shutdown() {
	m.mu.RLock()
	c := m.current
	m.mu.RUnlock()
	if c == nil {
		return
	}
	_ = c.End()
	<-c.Done()
	log.Info().Str("module", "orch").Str("session", c.ID()).Msg("session shut down")
}
