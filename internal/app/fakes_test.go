package app

import (
	"errors"
	"sync"

	"github.com/dkeye/VideoCall/internal/core"
	"github.com/dkeye/VideoCall/internal/domain"
)

type fakeSurface struct {
	mu       sync.Mutex
	visible  bool
	overlay  bool
	released bool
}

func newFakeSurface() *fakeSurface { return &fakeSurface{visible: true} }

func (s *fakeSurface) SetVisible(v bool) {
	s.mu.Lock()
	s.visible = v
	s.mu.Unlock()
}

func (s *fakeSurface) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *fakeSurface) SetZOrderMediaOverlay(o bool) {
	s.mu.Lock()
	s.overlay = o
	s.mu.Unlock()
}

func (s *fakeSurface) Release() {
	s.mu.Lock()
	s.released = true
	s.mu.Unlock()
}

func (s *fakeSurface) isReleased() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

type fakeBinder struct {
	created []*fakeSurface
	bound   map[domain.ParticipantID]core.Surface
	failAt  int
}

func newFakeBinder() *fakeBinder {
	return &fakeBinder{bound: make(map[domain.ParticipantID]core.Surface), failAt: -1}
}

func (b *fakeBinder) CreateRendererSurface() (core.Surface, error) {
	if b.failAt == len(b.created) {
		return nil, errors.New("out of surfaces")
	}
	s := newFakeSurface()
	b.created = append(b.created, s)
	return s, nil
}

func (b *fakeBinder) SetupRemoteVideo(s core.Surface, _ domain.RenderMode, uid domain.ParticipantID) error {
	b.bound[uid] = s
	return nil
}
