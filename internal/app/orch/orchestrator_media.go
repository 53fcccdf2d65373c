package orch

import (
	"github.com/dkeye/VideoCall/internal/core"
	"github.com/dkeye/VideoCall/internal/domain"
)

// ToggleVideoMute flips local video and returns the new muted flag.
func (c *SessionController) ToggleVideoMute() (bool, error) {
	return c.localCommand(func() bool { return c.local.ToggleVideoMute() })
}

// ToggleAudioMute flips local audio and returns the new muted flag.
func (c *SessionController) ToggleAudioMute() (bool, error) {
	return c.localCommand(func() bool { return c.local.ToggleAudioMute() })
}

// SwitchCamera asks the engine to flip cameras.
func (c *SessionController) SwitchCamera() error {
	_, err := c.localCommand(func() bool {
		c.local.SwitchCamera()
		return false
	})
	return err
}

func (c *SessionController) localCommand(fn func() bool) (bool, error) {
	var (
		res bool
		err error
	)
	ran := c.do(func() {
		if c.state != domain.StateActive {
			err = domain.ErrSessionNotActive
			return
		}
		res = fn()
		c.publish()
	})
	if !ran {
		return false, domain.ErrSessionNotActive
	}
	return res, err
}

// dispatch routes one engine event. Events that arrive when no live handle
// exists are discarded. Loop only.
func (c *SessionController) dispatch(ev core.EngineEvent) {
	if c.handle == nil || c.state != domain.StateActive {
		c.logger.Debug().Str("event", ev.Kind.String()).Str("state", string(c.state)).Msg("event discarded")
		return
	}

	switch ev.Kind {
	case core.EventJoinChannelSuccess:
		c.joined = true
		c.localUID = ev.UID
		c.logger.Info().Str("channel", ev.Channel.String()).Str("uid", ev.UID.String()).Msg("joined channel")
	case core.EventUserJoined:
		if !c.registry.OnJoined(ev.UID) {
			return
		}
	case core.EventUserOffline:
		if !c.registry.OnLeft(ev.UID, ev.Reason) {
			return
		}
	case core.EventUserMuteVideo:
		if !c.registry.OnVideoMuted(ev.UID, ev.Muted) {
			return
		}
	case core.EventConnectionLost:
		c.joined = false
		c.logger.Warn().Msg("connection to channel lost")
	case core.EventError:
		c.logger.Error().Err(ev.Err).Msg("engine error")
		return
	default:
		c.logger.Warn().Str("event", ev.Kind.String()).Msg("unknown engine event")
		return
	}
	c.publish()
}
