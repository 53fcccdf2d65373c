package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/VideoCall/internal/core"
	"github.com/dkeye/VideoCall/internal/domain"
)

// SurfaceBinder creates renderer surfaces and binds them to a remote uid.
// EngineHandle implements it.
type SurfaceBinder interface {
	CreateRendererSurface() (core.Surface, error)
	SetupRemoteVideo(s core.Surface, mode domain.RenderMode, uid domain.ParticipantID) error
}

type remoteView struct {
	participant *domain.Participant
	surface     core.Surface
}

// ParticipantRegistry tracks the rendered remote participant. There is a
// single remote slot: while it is occupied, further joins are ignored, even
// in a multi-party channel. Views are indexed by participant id, never by
// position.
type ParticipantRegistry struct {
	binder SurfaceBinder

	mu       sync.RWMutex
	views    map[domain.ParticipantID]*remoteView
	occupant domain.ParticipantID
	occupied bool
}

func NewParticipantRegistry(binder SurfaceBinder) *ParticipantRegistry {
	return &ParticipantRegistry{
		binder: binder,
		views:  make(map[domain.ParticipantID]*remoteView),
	}
}

// OnJoined binds a surface for uid if the slot is free. It reports whether
// the slot changed.
func (r *ParticipantRegistry) OnJoined(uid domain.ParticipantID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.occupied {
		log.Info().
			Str("module", "app.registry").
			Str("uid", uid.String()).
			Str("occupant", r.occupant.String()).
			Msg("remote slot occupied, participant not rendered")
		return false
	}

	surface, err := r.binder.CreateRendererSurface()
	if err != nil {
		log.Error().Err(err).Str("module", "app.registry").Str("uid", uid.String()).Msg("create renderer surface")
		return false
	}
	if err := r.binder.SetupRemoteVideo(surface, domain.RenderFit, uid); err != nil {
		log.Error().Err(err).Str("module", "app.registry").Str("uid", uid.String()).Msg("bind remote surface")
		surface.Release()
		return false
	}

	p := domain.NewParticipant(uid)
	p.Bound = true
	r.views[uid] = &remoteView{participant: p, surface: surface}
	r.occupant = uid
	r.occupied = true
	log.Info().Str("module", "app.registry").Str("uid", uid.String()).Msg("remote participant rendered")
	return true
}

// OnLeft releases the slot when uid is its occupant.
func (r *ParticipantRegistry) OnLeft(uid domain.ParticipantID, reason domain.OfflineReason) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.matchLocked(uid)
	if !ok {
		logStale(uid, "left")
		return false
	}
	v.surface.Release()
	delete(r.views, uid)
	r.occupied = false
	r.occupant = 0
	log.Info().Str("module", "app.registry").Str("uid", uid.String()).Str("reason", reason.String()).Msg("remote participant left")
	return true
}

// OnVideoMuted hides or shows the occupant's surface.
func (r *ParticipantRegistry) OnVideoMuted(uid domain.ParticipantID, muted bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.matchLocked(uid)
	if !ok {
		logStale(uid, "video_muted")
		return false
	}
	v.participant.Muted = muted
	v.surface.SetVisible(!muted)
	log.Info().Str("module", "app.registry").Str("uid", uid.String()).Bool("muted", muted).Msg("remote video mute changed")
	return true
}

func (r *ParticipantRegistry) matchLocked(uid domain.ParticipantID) (*remoteView, bool) {
	if !r.occupied || r.occupant != uid {
		return nil, false
	}
	v, ok := r.views[uid]
	return v, ok
}

// Occupant returns a copy of the rendered participant, if any.
func (r *ParticipantRegistry) Occupant() (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.occupied {
		return domain.Participant{}, false
	}
	return *r.views[r.occupant].participant, true
}

// Surface returns the surface bound to uid.
func (r *ParticipantRegistry) Surface(uid domain.ParticipantID) (core.Surface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[uid]
	if !ok {
		return nil, false
	}
	return v.surface, true
}

// Clear releases every surface. Used on teardown.
func (r *ParticipantRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for uid, v := range r.views {
		v.surface.Release()
		delete(r.views, uid)
	}
	r.occupied = false
	r.occupant = 0
	log.Info().Str("module", "app.registry").Msg("registry cleared")
}

// logStale records a StaleEventIgnored: expected, never surfaced to users.
func logStale(uid domain.ParticipantID, kind string) {
	log.Debug().Str("module", "app.registry").Str("uid", uid.String()).Str("event", kind).Msg("stale event ignored")
}
