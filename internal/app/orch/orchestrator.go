package orch

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/VideoCall/internal/app"
	"github.com/dkeye/VideoCall/internal/core"
	"github.com/dkeye/VideoCall/internal/domain"
)

const defaultInboxSize = 64

// Options are the process-level inputs of a session.
type Options struct {
	AppID string
	// Token is empty when the deployment has token authentication disabled.
	Token       string
	JoinInfo    string
	Video       domain.VideoProfile
	EventBuffer int
}

// envelope is one item of the controller inbox: either an engine event or
// a closure posted by a caller.
type envelope struct {
	event *core.EngineEvent
	call  func()
}

// SessionController drives one call from permission prompts to teardown.
// All session, registry and local media state is mutated only by Run's
// goroutine; engine callbacks and user commands reach it through the inbox.
type SessionController struct {
	id        string
	engine    core.MediaEngine
	gate      *app.PermissionGate
	opts      Options
	observers []core.SessionObserver
	logger    zerolog.Logger

	inbox chan envelope
	done  chan struct{}
	snap  atomic.Pointer[domain.Snapshot]

	// owned by the Run goroutine
	runCtx       context.Context
	state        domain.SessionState
	channel      domain.ChannelName
	handle       *app.EngineHandle
	registry     *app.ParticipantRegistry
	local        *app.LocalMediaController
	cancelPrompt context.CancelFunc
	joined       bool
	localUID     domain.ParticipantID
	reason       string
}

func NewSessionController(engine core.MediaEngine, gate *app.PermissionGate, opts Options, observers ...core.SessionObserver) *SessionController {
	size := opts.EventBuffer
	if size <= 0 {
		size = defaultInboxSize
	}
	id := uuid.NewString()
	c := &SessionController{
		id:        id,
		engine:    engine,
		gate:      gate,
		opts:      opts,
		observers: observers,
		logger:    log.With().Str("module", "orch").Str("session", id).Logger(),
		inbox:     make(chan envelope, size),
		done:      make(chan struct{}),
		state:     domain.StateIdle,
		local:     app.NewLocalMediaController(),
	}
	c.publish()
	return c
}

func (c *SessionController) ID() string { return c.id }

// Run processes the inbox until the session is terminated or ctx is done.
// Cancelling ctx is the hosting context going away: the session is torn
// down before Run returns.
func (c *SessionController) Run(ctx context.Context) {
	defer close(c.done)
	c.runCtx = ctx
	c.logger.Debug().Msg("controller loop started")

	for {
		select {
		case <-ctx.Done():
			c.terminate("host context done")
			return
		case env := <-c.inbox:
			if env.event != nil {
				c.dispatch(*env.event)
			} else {
				env.call()
			}
			if c.state == domain.StateTerminated {
				c.logger.Debug().Int("dropped", len(c.inbox)).Msg("controller loop finished")
				return
			}
		}
	}
}

// Done is closed once the controller loop has exited.
func (c *SessionController) Done() <-chan struct{} { return c.done }

// Snapshot returns the state as of the last processed inbox item.
func (c *SessionController) Snapshot() domain.Snapshot {
	return *c.snap.Load()
}

func (c *SessionController) State() domain.SessionState {
	return c.snap.Load().State
}

// do runs fn on the controller loop and waits for it. It reports false when
// the loop exited before fn could run.
func (c *SessionController) do(fn func()) bool {
	reply := make(chan struct{})
	select {
	case c.inbox <- envelope{call: func() { fn(); close(reply) }}:
	case <-c.done:
		return false
	}
	select {
	case <-reply:
		return true
	case <-c.done:
		select {
		case <-reply:
			return true
		default:
			return false
		}
	}
}

// post enqueues without waiting. Items posted after the loop exits are dropped.
func (c *SessionController) post(env envelope) {
	select {
	case c.inbox <- env:
	case <-c.done:
	}
}

func (c *SessionController) setState(s domain.SessionState) {
	if c.state == s {
		return
	}
	c.logger.Info().Str("from", string(c.state)).Str("to", string(s)).Str("channel", c.channel.String()).Msg("state changed")
	c.state = s
}

// publish stores a fresh snapshot and notifies observers. Loop only.
func (c *SessionController) publish() {
	snap := domain.Snapshot{
		ID:          c.id,
		Channel:     c.channel,
		State:       c.state,
		Local:       c.local.State(),
		LocalUID:    c.localUID,
		Joined:      c.joined,
		Permissions: c.gate.State(),
		Reason:      c.reason,
	}
	if c.registry != nil {
		if p, ok := c.registry.Occupant(); ok {
			snap.Remote = &p
		}
	}
	c.snap.Store(&snap)
	for _, o := range c.observers {
		o.OnSessionChanged(snap)
	}
}

// sink is the EventSink handed to the engine. It hands events over to the
// loop and drops them once the loop is gone.
type sink struct{ c *SessionController }

func (s sink) Deliver(ev core.EngineEvent) {
	select {
	case s.c.inbox <- envelope{event: &ev}:
	case <-s.c.done:
		s.c.logger.Debug().Str("event", ev.Kind.String()).Str("uid", ev.UID.String()).Msg("event after teardown discarded")
	}
}
