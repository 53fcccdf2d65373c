package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/VideoCall/internal/core"
	"github.com/dkeye/VideoCall/internal/domain"
)

// LocalCommands is the part of EngineHandle the local controller drives.
type LocalCommands interface {
	MuteLocalVideo(muted bool) error
	MuteLocalAudio(muted bool) error
	SwitchCamera() error
}

// LocalMediaController owns the local mute flags and the preview surface.
type LocalMediaController struct {
	mu         sync.RWMutex
	engine     LocalCommands
	preview    core.Surface
	videoMuted bool
	audioMuted bool
}

func NewLocalMediaController() *LocalMediaController {
	return &LocalMediaController{}
}

// Bind attaches the engine commands are sent to. nil detaches.
func (l *LocalMediaController) Bind(engine LocalCommands) {
	l.mu.Lock()
	l.engine = engine
	l.mu.Unlock()
}

// AttachPreview takes ownership of the local preview surface. The preview
// is drawn as a media overlay above the remote view.
func (l *LocalMediaController) AttachPreview(s core.Surface) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.preview != nil {
		l.preview.Release()
	}
	s.SetZOrderMediaOverlay(!l.videoMuted)
	s.SetVisible(!l.videoMuted)
	l.preview = s
}

// ToggleVideoMute flips the video flag, tells the engine and hides or shows
// the preview. Engine failures are logged by the handle; the flag stays flipped.
func (l *LocalMediaController) ToggleVideoMute() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.videoMuted = !l.videoMuted
	if l.engine != nil {
		_ = l.engine.MuteLocalVideo(l.videoMuted)
	}
	if l.preview != nil {
		l.preview.SetZOrderMediaOverlay(!l.videoMuted)
		l.preview.SetVisible(!l.videoMuted)
	}
	log.Info().Str("module", "app.local").Bool("video_muted", l.videoMuted).Msg("local video toggled")
	return l.videoMuted
}

// ToggleAudioMute flips the audio flag. Audio has no visual effect.
func (l *LocalMediaController) ToggleAudioMute() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.audioMuted = !l.audioMuted
	if l.engine != nil {
		_ = l.engine.MuteLocalAudio(l.audioMuted)
	}
	log.Info().Str("module", "app.local").Bool("audio_muted", l.audioMuted).Msg("local audio toggled")
	return l.audioMuted
}

// SwitchCamera is a no-op without an engine.
func (l *LocalMediaController) SwitchCamera() {
	l.mu.RLock()
	engine := l.engine
	l.mu.RUnlock()
	if engine == nil {
		log.Debug().Str("module", "app.local").Msg("switch camera without engine ignored")
		return
	}
	_ = engine.SwitchCamera()
}

func (l *LocalMediaController) State() domain.LocalMediaState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return domain.LocalMediaState{
		VideoMuted:     l.videoMuted,
		AudioMuted:     l.audioMuted,
		PreviewVisible: l.preview != nil && l.preview.Visible(),
	}
}

// Release destroys the preview and detaches the engine.
func (l *LocalMediaController) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.preview != nil {
		l.preview.Release()
		l.preview = nil
	}
	l.engine = nil
}
