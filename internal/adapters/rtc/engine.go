package rtc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/VideoCall/internal/core"
	"github.com/dkeye/VideoCall/internal/domain"
)

var (
	ErrForeignSurface = errors.New("surface was not created by this engine")
	ErrInChannel      = errors.New("already in a channel")
	ErrVideoDisabled  = errors.New("video not enabled")
)

type Options struct {
	SignalURL  string
	ICEServers []string
	Capture    CaptureOptions
}

// Engine is a core.MediaEngine backed by pion/webrtc and a websocket
// signaling server.
type Engine struct {
	opts Options
}

func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

func (e *Engine) Create(appID string, sink core.EventSink) (core.EngineSession, error) {
	if err := domain.ValidateAppID(appID); err != nil {
		return nil, err
	}
	logger := log.With().Str("module", "rtc").Logger()

	api, err := newAPI()
	if err != nil {
		return nil, fmt.Errorf("webrtc api: %w", err)
	}
	pc, err := newPeerConnection(api, DefaultWebRTCConfig(e.opts.ICEServers), logger)
	if err != nil {
		return nil, fmt.Errorf("peer connection: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		appID:     appID,
		signalURL: e.opts.SignalURL,
		sink:      sink,
		logger:    logger,
		pc:        pc,
		renderers: newRendererSet(logger),
		ctx:       ctx,
		cancel:    cancel,
		facing:    cameraFront,
		ssrcs:     make(map[domain.ParticipantID]webrtc.SSRC),
	}
	pc.onICE = s.sendCandidate
	pc.onTrack = s.onTrack
	pc.onClosed = s.onPeerLost
	pc.Start(ctx)

	video, audio, err := listenCapture(e.opts.Capture)
	if err != nil {
		logger.Error().Err(err).Msg("capture source unavailable, publishing silence")
	}
	if video != nil {
		go ingest(ctx, video, logger.With().Str("capture", "video").Logger(), s.writeVideoRTP)
	}
	if audio != nil {
		go ingest(ctx, audio, logger.With().Str("capture", "audio").Logger(), s.writeAudioRTP)
	}

	logger.Info().Str("app_id", appID).Msg("engine session created")
	return s, nil
}

type cameraFacing string

const (
	cameraFront cameraFacing = "front"
	cameraBack  cameraFacing = "back"
)

type session struct {
	appID     string
	signalURL string
	sink      core.EventSink
	logger    zerolog.Logger
	pc        *peerConnection
	renderers *rendererSet

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	destroyed   bool
	videoOn     bool
	videoMuted  bool
	audioMuted  bool
	bitrateKbps int
	facing      cameraFacing
	preview     *Surface

	signal *signalConn
	leave  context.CancelFunc
	joined bool
	ssrcs  map[domain.ParticipantID]webrtc.SSRC
}

var _ core.EngineSession = (*session)(nil)

func (s *session) EnableVideo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return domain.ErrEngineDestroyed
	}
	if err := s.pc.EnableVideo(); err != nil {
		return err
	}
	s.videoOn = true
	return nil
}

func (s *session) SetVideoEncoderConfiguration(p domain.VideoProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return domain.ErrEngineDestroyed
	}
	s.bitrateKbps = targetBitrate(p)
	s.logger.Debug().
		Int("width", p.Width).
		Int("height", p.Height).
		Int("fps", p.FrameRate).
		Int("bitrate_kbps", s.bitrateKbps).
		Msg("encoder configured")
	return nil
}

// targetBitrate scales the 640x360@15fps baseline of 400 Kbps by pixel rate.
// Compatible mode keeps the communication bitrate, standard doubles it.
func targetBitrate(p domain.VideoProfile) int {
	const basePixels, baseFPS, baseKbps = 640 * 360, 15, 400
	kbps := baseKbps * p.Width * p.Height / basePixels * p.FrameRate / baseFPS
	if p.Bitrate == domain.BitrateStandard {
		kbps *= 2
	}
	return max(kbps, 65)
}

func (s *session) JoinChannel(token string, channel domain.ChannelName, info string, uid domain.ParticipantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return domain.ErrEngineDestroyed
	}
	if s.leave != nil {
		return ErrInChannel
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.leave = cancel

	go s.connect(ctx, joinMessage{
		Type:    "join",
		AppID:   s.appID,
		Channel: channel.String(),
		Token:   token,
		Info:    info,
		UID:     uint32(uid),
	})
	return nil
}

func (s *session) connect(ctx context.Context, join joinMessage) {
	logger := s.logger.With().Str("channel", join.Channel).Logger()

	conn, err := dialSignal(ctx, s.signalURL)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error().Err(err).Msg("signal dial failed")
			s.emit(core.EngineEvent{Kind: core.EventError, Err: fmt.Errorf("signal dial: %w", err)})
		}
		return
	}

	s.mu.Lock()
	if ctx.Err() != nil {
		s.mu.Unlock()
		conn.Close()
		_ = conn.conn.Close()
		return
	}
	s.signal = conn
	s.mu.Unlock()

	go conn.writePump(logger)

	if err := conn.sendJSON(join); err != nil {
		logger.Error().Err(err).Msg("send join")
	}
	offer, err := s.pc.CreateAndSetOffer()
	if err != nil {
		logger.Error().Err(err).Msg("create offer")
		s.emit(core.EngineEvent{Kind: core.EventError, Err: fmt.Errorf("create offer: %w", err)})
	} else if err := conn.sendJSON(sdpMessage{Type: "offer", SDP: offer.SDP}); err != nil {
		logger.Error().Err(err).Msg("send offer")
	}

	err = conn.readPump(ctx, logger, s.handle)
	conn.Close()

	s.mu.Lock()
	wasJoined := s.joined
	if s.signal == conn {
		s.signal = nil
		s.joined = false
	}
	s.mu.Unlock()

	if err == nil {
		return
	}
	logger.Warn().Err(err).Msg("signal connection lost")
	if wasJoined {
		s.emit(core.EngineEvent{Kind: core.EventConnectionLost})
	} else {
		s.emit(core.EngineEvent{Kind: core.EventError, Err: fmt.Errorf("signal: %w", err)})
	}
}

func (s *session) handle(msg serverMessage) {
	uid := domain.ParticipantID(msg.UID)
	switch msg.Type {
	case "joined":
		s.mu.Lock()
		s.joined = true
		s.mu.Unlock()
		s.emit(core.EngineEvent{Kind: core.EventJoinChannelSuccess, Channel: domain.ChannelName(msg.Channel), UID: uid})
	case "user_joined":
		s.emit(core.UserJoined(uid))
	case "user_offline":
		s.mu.Lock()
		delete(s.ssrcs, uid)
		s.mu.Unlock()
		s.renderers.Remove(uid)
		s.emit(core.UserOffline(uid, parseOfflineReason(msg.Reason)))
	case "user_mute_video":
		s.emit(core.UserMuteVideo(uid, msg.Muted))
	case "offer":
		answer, err := s.pc.AnswerOffer(webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: msg.SDP})
		if err != nil {
			s.logger.Error().Err(err).Msg("answer renegotiation offer")
			return
		}
		s.sendSignal(sdpMessage{Type: "answer", SDP: answer.SDP})
	case "answer":
		if err := s.pc.ApplyAnswer(webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: msg.SDP}); err != nil {
			s.logger.Error().Err(err).Msg("apply answer")
		}
	case "candidate":
		if msg.Candidate == nil {
			return
		}
		if err := s.pc.AddICECandidate(*msg.Candidate); err != nil {
			s.logger.Error().Err(err).Msg("add candidate")
		}
	case "error":
		s.emit(core.EngineEvent{Kind: core.EventError, Err: errors.New(msg.Error)})
	case "pong":
	default:
		s.logger.Warn().Str("type", msg.Type).Msg("unknown signal")
	}
}

func parseOfflineReason(r string) domain.OfflineReason {
	switch r {
	case "dropped":
		return domain.OfflineDropped
	case "became_audience":
		return domain.OfflineBecameAudience
	default:
		return domain.OfflineQuit
	}
}

// emit forwards ev unless the session is destroyed.
func (s *session) emit(ev core.EngineEvent) {
	s.mu.Lock()
	destroyed := s.destroyed
	s.mu.Unlock()
	if destroyed {
		return
	}
	s.sink.Deliver(ev)
}

func (s *session) sendSignal(v any) {
	s.mu.Lock()
	conn := s.signal
	s.mu.Unlock()
	if conn == nil {
		return
	}
	if err := conn.sendJSON(v); err != nil {
		s.logger.Warn().Err(err).Msg("signal send dropped")
	}
}

func (s *session) sendCandidate(c webrtc.ICECandidateInit) {
	s.sendSignal(candidateMessage{Type: "candidate", Candidate: c})
}

// onTrack routes remote video to the renderer bound to its publisher. The
// publisher's uid is the track's stream id. Remote audio is drained.
func (s *session) onTrack(ctx context.Context, track *webrtc.TrackRemote) {
	if track.Kind() != webrtc.RTPCodecTypeVideo {
		go func() {
			buf := make([]byte, 1500)
			for {
				if _, _, err := track.Read(buf); err != nil {
					return
				}
			}
		}()
		return
	}
	id, err := strconv.ParseUint(track.StreamID(), 10, 32)
	if err != nil {
		s.logger.Warn().Str("stream_id", track.StreamID()).Msg("remote track without uid, ignoring")
		return
	}
	uid := domain.ParticipantID(id)
	s.mu.Lock()
	s.ssrcs[uid] = track.SSRC()
	s.mu.Unlock()

	s.renderers.AddTrack(ctx, uid, track)
	if s.renderers.Running(uid) {
		s.requestKeyframe(uid)
	}
}

// requestKeyframe makes a freshly bound renderer start on a decodable frame.
func (s *session) requestKeyframe(uid domain.ParticipantID) {
	s.mu.Lock()
	ssrc, ok := s.ssrcs[uid]
	s.mu.Unlock()
	if !ok {
		return
	}
	if err := s.pc.RequestKeyframe(ssrc); err != nil {
		s.logger.Debug().Err(err).Str("uid", uid.String()).Msg("keyframe request failed")
	}
}

func (s *session) onPeerLost() {
	s.mu.Lock()
	joined := s.joined
	s.mu.Unlock()
	if joined {
		s.emit(core.EngineEvent{Kind: core.EventConnectionLost})
	}
}

func (s *session) LeaveChannel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return domain.ErrEngineDestroyed
	}
	s.leaveLocked()
	return nil
}

func (s *session) leaveLocked() {
	if s.leave != nil {
		s.leave()
		s.leave = nil
	}
	if s.signal != nil {
		if err := s.signal.sendJSON(typeOnly{Type: "leave"}); err != nil {
			s.logger.Warn().Err(err).Msg("leave not sent")
		}
		s.signal.Close()
		s.signal = nil
	}
	s.joined = false
	clear(s.ssrcs)
	s.renderers.StopAll()
}

func (s *session) Destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.leaveLocked()
	s.destroyed = true
	s.preview = nil
	s.mu.Unlock()

	s.cancel()
	s.pc.Close()
	s.logger.Info().Msg("engine session destroyed")
}

func (s *session) MuteLocalVideoStream(muted bool) error {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return domain.ErrEngineDestroyed
	}
	if !s.videoOn {
		s.mu.Unlock()
		return ErrVideoDisabled
	}
	if err := s.pc.MuteVideo(muted); err != nil {
		s.mu.Unlock()
		return err
	}
	s.videoMuted = muted
	s.mu.Unlock()

	s.sendSignal(muteMessage{Type: "mute_video", Muted: muted})
	return nil
}

func (s *session) MuteLocalAudioStream(muted bool) error {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return domain.ErrEngineDestroyed
	}
	if err := s.pc.MuteAudio(muted); err != nil {
		s.mu.Unlock()
		return err
	}
	s.audioMuted = muted
	s.mu.Unlock()

	s.sendSignal(muteMessage{Type: "mute_audio", Muted: muted})
	return nil
}

func (s *session) SwitchCamera() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return domain.ErrEngineDestroyed
	}
	if !s.videoOn {
		return ErrVideoDisabled
	}
	if s.facing == cameraFront {
		s.facing = cameraBack
	} else {
		s.facing = cameraFront
	}
	s.logger.Info().Str("facing", string(s.facing)).Msg("camera switched")
	return nil
}

func (s *session) CreateRendererSurface() (core.Surface, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return nil, domain.ErrEngineDestroyed
	}
	return NewSurface(), nil
}

func (s *session) SetupLocalVideo(cs core.Surface) error {
	surface, ok := cs.(*Surface)
	if !ok {
		return ErrForeignSurface
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return domain.ErrEngineDestroyed
	}
	surface.setRenderMode(domain.RenderHidden)
	s.preview = surface
	return nil
}

func (s *session) SetupRemoteVideo(cs core.Surface, mode domain.RenderMode, uid domain.ParticipantID) error {
	surface, ok := cs.(*Surface)
	if !ok {
		return ErrForeignSurface
	}
	s.mu.Lock()
	destroyed := s.destroyed
	s.mu.Unlock()
	if destroyed {
		return domain.ErrEngineDestroyed
	}
	surface.setRenderMode(mode)
	s.renderers.Bind(uid, surface)
	if s.renderers.Running(uid) {
		s.requestKeyframe(uid)
	}
	return nil
}

// writeVideoRTP publishes one captured packet and draws it on the local
// preview. Packets are dropped while local video is muted.
func (s *session) writeVideoRTP(pkt *rtp.Packet) error {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return domain.ErrEngineDestroyed
	}
	if !s.videoOn {
		s.mu.Unlock()
		return ErrVideoDisabled
	}
	muted, preview, track := s.videoMuted, s.preview, s.pc.video
	s.mu.Unlock()

	if preview != nil {
		preview.Render(pkt)
	}
	if muted {
		return nil
	}
	return track.WriteRTP(pkt)
}

func (s *session) writeAudioRTP(pkt *rtp.Packet) error {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return domain.ErrEngineDestroyed
	}
	muted, track := s.audioMuted, s.pc.audio
	s.mu.Unlock()
	if muted {
		return nil
	}
	return track.WriteRTP(pkt)
}
