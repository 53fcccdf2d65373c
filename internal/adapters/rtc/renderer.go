package rtc

import (
	"context"
	"sync"

	"github.com/dkeye/VideoCall/internal/domain"
	"github.com/pion/interceptor"
	"github.com/pion/rtp"
	"github.com/rs/zerolog"
)

// rtpSource is the read side of a remote track.
type rtpSource interface {
	ReadRTP() (*rtp.Packet, interceptor.Attributes, error)
}

type renderer struct {
	src     rtpSource
	surface *Surface
	cancel  context.CancelFunc
}

// loop reads RTP packets from the source track and draws them on the surface.
func (r *renderer) loop(ctx context.Context, logger zerolog.Logger) {
	defer r.cancel()
	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("renderer ctx done")
			return
		default:
		}
		pkt, _, err := r.src.ReadRTP()
		if err != nil {
			logger.Debug().Err(err).Msg("renderer read RTP stopped")
			return
		}
		// Cancelled while blocked in ReadRTP: never draw on a surface that
		// has been unbound.
		if ctx.Err() != nil {
			return
		}
		if !r.surface.Render(pkt) {
			logger.Debug().Msg("surface released, stopping renderer")
			return
		}
	}
}

// rendererSet pairs remote video tracks with surfaces by participant id.
// Whichever side arrives second starts the render loop.
type rendererSet struct {
	logger zerolog.Logger

	mu        sync.Mutex
	tracks    map[domain.ParticipantID]rtpSource
	surfaces  map[domain.ParticipantID]*Surface
	renderers map[domain.ParticipantID]*renderer
	trackCtx  map[domain.ParticipantID]context.Context
}

func newRendererSet(logger zerolog.Logger) *rendererSet {
	return &rendererSet{
		logger:    logger,
		tracks:    make(map[domain.ParticipantID]rtpSource),
		surfaces:  make(map[domain.ParticipantID]*Surface),
		renderers: make(map[domain.ParticipantID]*renderer),
		trackCtx:  make(map[domain.ParticipantID]context.Context),
	}
}

// AddTrack registers the video track published by uid.
func (s *rendererSet) AddTrack(ctx context.Context, uid domain.ParticipantID, src rtpSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked(uid)
	s.tracks[uid] = src
	s.trackCtx[uid] = ctx
	s.startLocked(uid)
}

// Bind attaches surface to uid's stream, replacing any earlier binding.
func (s *rendererSet) Bind(uid domain.ParticipantID, surface *Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked(uid)
	s.surfaces[uid] = surface
	s.startLocked(uid)
}

// Remove drops both the track and the surface binding of uid.
func (s *rendererSet) Remove(uid domain.ParticipantID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked(uid)
	delete(s.tracks, uid)
	delete(s.trackCtx, uid)
	delete(s.surfaces, uid)
}

func (s *rendererSet) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for uid := range s.renderers {
		s.stopLocked(uid)
	}
	clear(s.tracks)
	clear(s.trackCtx)
	clear(s.surfaces)
}

func (s *rendererSet) Running(uid domain.ParticipantID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.renderers[uid]
	return ok
}

func (s *rendererSet) startLocked(uid domain.ParticipantID) {
	src, ok := s.tracks[uid]
	if !ok {
		return
	}
	surface, ok := s.surfaces[uid]
	if !ok {
		return
	}
	ctx, cancel := context.WithCancel(s.trackCtx[uid])
	r := &renderer{src: src, surface: surface, cancel: cancel}
	s.renderers[uid] = r

	logger := s.logger.With().Str("uid", uid.String()).Logger()
	logger.Info().Msg("starting renderer loop")
	go r.loop(ctx, logger)
}

func (s *rendererSet) stopLocked(uid domain.ParticipantID) {
	if r, ok := s.renderers[uid]; ok {
		r.cancel()
		delete(s.renderers, uid)
	}
}
