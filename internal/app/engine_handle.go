package app

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/VideoCall/internal/core"
	"github.com/dkeye/VideoCall/internal/domain"
)

// EngineHandle owns one media engine session for the life of a call.
// Commands on a destroyed handle are no-ops.
type EngineHandle struct {
	sess   core.EngineSession
	logger zerolog.Logger

	mu        sync.Mutex
	profile   *domain.VideoProfile
	joined    bool
	destroyed bool
}

// CreateEngine initializes a session. Failures are returned as
// *domain.EngineCreateError and leave nothing to tear down.
func CreateEngine(engine core.MediaEngine, appID string, sink core.EventSink) (*EngineHandle, error) {
	sess, err := engine.Create(appID, sink)
	if err != nil {
		return nil, &domain.EngineCreateError{Cause: err}
	}
	if sess == nil {
		return nil, &domain.EngineCreateError{Cause: domain.ErrEngineDestroyed}
	}
	h := &EngineHandle{
		sess:   sess,
		logger: log.With().Str("module", "app.engine").Logger(),
	}
	h.logger.Info().Msg("engine created")
	return h, nil
}

// ConfigureVideo enables video and applies the encoder profile. Calling it
// again with any profile is allowed until Join.
func (h *EngineHandle) ConfigureVideo(p domain.VideoProfile) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return domain.ErrEngineDestroyed
	}
	if h.joined {
		return domain.ErrAlreadyJoined
	}
	if h.profile != nil && *h.profile == p {
		return nil
	}
	if err := h.sess.EnableVideo(); err != nil {
		return &domain.CommandError{Op: "enable_video", Err: err}
	}
	if err := h.sess.SetVideoEncoderConfiguration(p); err != nil {
		return &domain.CommandError{Op: "set_video_encoder_configuration", Err: err}
	}
	h.profile = &p
	h.logger.Info().
		Int("width", p.Width).
		Int("height", p.Height).
		Int("fps", p.FrameRate).
		Str("bitrate", string(p.Bitrate)).
		Str("orientation", string(p.Orientation)).
		Msg("video configured")
	return nil
}

// Join requests channel membership. Its outcome arrives as engine events.
// An empty token means token authentication is disabled.
func (h *EngineHandle) Join(channel domain.ChannelName, token, info string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return domain.ErrEngineDestroyed
	}
	if err := h.sess.JoinChannel(token, channel, info, 0); err != nil {
		return &domain.CommandError{Op: "join_channel", Err: err}
	}
	h.joined = true
	h.logger.Info().Str("channel", channel.String()).Bool("token", token != "").Msg("join requested")
	return nil
}

func (h *EngineHandle) MuteLocalVideo(muted bool) error {
	return h.command("mute_local_video", func(s core.EngineSession) error { return s.MuteLocalVideoStream(muted) })
}

func (h *EngineHandle) MuteLocalAudio(muted bool) error {
	return h.command("mute_local_audio", func(s core.EngineSession) error { return s.MuteLocalAudioStream(muted) })
}

func (h *EngineHandle) SwitchCamera() error {
	return h.command("switch_camera", core.EngineSession.SwitchCamera)
}

// command runs a fire-and-forget engine call. Failures are logged and
// returned for callers that care; session state is never touched.
func (h *EngineHandle) command(op string, fn func(core.EngineSession) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		h.logger.Debug().Str("op", op).Msg("command after destroy ignored")
		return nil
	}
	if err := fn(h.sess); err != nil {
		cerr := &domain.CommandError{Op: op, Err: err}
		h.logger.Warn().Err(cerr).Str("op", op).Msg("engine command failed")
		return cerr
	}
	return nil
}

func (h *EngineHandle) CreateRendererSurface() (core.Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return nil, domain.ErrEngineDestroyed
	}
	return h.sess.CreateRendererSurface()
}

func (h *EngineHandle) SetupLocalVideo(s core.Surface) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return domain.ErrEngineDestroyed
	}
	return h.sess.SetupLocalVideo(s)
}

func (h *EngineHandle) SetupRemoteVideo(s core.Surface, mode domain.RenderMode, uid domain.ParticipantID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return domain.ErrEngineDestroyed
	}
	return h.sess.SetupRemoteVideo(s, mode, uid)
}

// Teardown leaves the channel and destroys the session, in that order,
// exactly once. It reports whether this call performed the teardown.
func (h *EngineHandle) Teardown() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return false
	}
	h.destroyed = true
	if err := h.sess.LeaveChannel(); err != nil {
		h.logger.Warn().Err(err).Msg("leave channel failed")
	}
	h.sess.Destroy()
	h.sess = nil
	h.logger.Info().Bool("was_joined", h.joined).Msg("engine destroyed")
	return true
}

func (h *EngineHandle) Alive() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.destroyed
}
