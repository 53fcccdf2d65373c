package orch

import (
	"context"

	"github.com/dkeye/VideoCall/internal/app"
	"github.com/dkeye/VideoCall/internal/domain"
)

// Start moves an idle session to AwaitingPermissions and starts prompting.
// The prompts run off the loop; their outcome is posted back to it.
func (c *SessionController) Start(channel domain.ChannelName) error {
	var err error
	if !c.do(func() { err = c.start(channel) }) {
		return domain.ErrSessionNotActive
	}
	return err
}

func (c *SessionController) start(channel domain.ChannelName) error {
	if c.state != domain.StateIdle {
		return domain.ErrSessionExists
	}
	if channel == "" {
		return domain.ErrChannelNameEmpty
	}
	c.channel = channel
	c.setState(domain.StateAwaitingPermissions)
	c.publish()

	ctx, cancel := context.WithCancel(c.runCtx)
	c.cancelPrompt = cancel
	go func() {
		err := c.gate.RequestAll(ctx)
		c.post(envelope{call: func() { c.onPermissions(err) }})
	}()
	return nil
}

func (c *SessionController) onPermissions(err error) {
	if c.state != domain.StateAwaitingPermissions {
		c.logger.Debug().Str("state", string(c.state)).Msg("late permission result ignored")
		return
	}
	if c.cancelPrompt != nil {
		c.cancelPrompt()
		c.cancelPrompt = nil
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("permissions not granted")
		c.terminate(err.Error())
		return
	}
	c.setState(domain.StateInitializing)
	c.publish()
	c.initialize()
}

// initialize creates the engine, configures video, attaches the local
// preview and requests the join. Active means the join was requested.
func (c *SessionController) initialize() {
	h, err := app.CreateEngine(c.engine, c.opts.AppID, sink{c})
	if err != nil {
		c.logger.Error().Err(err).Msg("engine creation failed")
		c.terminate(err.Error())
		return
	}
	c.handle = h
	c.registry = app.NewParticipantRegistry(h)
	c.local.Bind(h)

	if err := h.ConfigureVideo(c.opts.Video); err != nil {
		c.fail("configure video", err)
		return
	}
	preview, err := h.CreateRendererSurface()
	if err != nil {
		c.fail("create local surface", err)
		return
	}
	if err := h.SetupLocalVideo(preview); err != nil {
		preview.Release()
		c.fail("setup local video", err)
		return
	}
	c.local.AttachPreview(preview)

	if err := h.Join(c.channel, c.opts.Token, c.opts.JoinInfo); err != nil {
		c.fail("join channel", err)
		return
	}
	c.setState(domain.StateActive)
	c.publish()
}

func (c *SessionController) fail(step string, err error) {
	c.logger.Error().Err(err).Str("step", step).Msg("session setup failed")
	c.terminate(step + ": " + err.Error())
}

// End terminates the session. Ending a terminated session is a no-op.
func (c *SessionController) End() error {
	c.do(func() { c.terminate("ended by user") })
	return nil
}

// terminate is the single teardown path. The handle reference is dropped
// before leave and destroy are issued, so nothing can reach the engine
// afterwards. Loop only.
func (c *SessionController) terminate(reason string) {
	if c.state == domain.StateTerminated {
		return
	}
	if c.cancelPrompt != nil {
		c.cancelPrompt()
		c.cancelPrompt = nil
	}

	handle := c.handle
	c.handle = nil
	if c.registry != nil {
		c.registry.Clear()
	}
	c.local.Release()
	if handle != nil {
		handle.Teardown()
	}

	c.reason = reason
	c.setState(domain.StateTerminated)
	c.publish()
}
