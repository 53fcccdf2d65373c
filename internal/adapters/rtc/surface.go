package rtc

import (
	"sync/atomic"

	"github.com/dkeye/VideoCall/internal/domain"
	"github.com/pion/rtp"
)

type SurfaceState int32

const (
	SurfaceVisible SurfaceState = iota
	SurfaceHidden
	SurfaceReleased
)

// Surface is a render target for one video stream. Packets are counted only
// while the surface is visible; a released surface drops everything.
type Surface struct {
	state   atomic.Int32 // Zero by default (SurfaceVisible)
	overlay atomic.Bool
	mode    atomic.Int32

	packets atomic.Uint64
	bytes   atomic.Uint64
}

func NewSurface() *Surface {
	return &Surface{}
}

func (s *Surface) State() SurfaceState {
	return SurfaceState(s.state.Load())
}

func (s *Surface) SetVisible(visible bool) {
	next := SurfaceHidden
	if visible {
		next = SurfaceVisible
	}
	for {
		cur := s.state.Load()
		if SurfaceState(cur) == SurfaceReleased {
			return
		}
		if s.state.CompareAndSwap(cur, int32(next)) {
			return
		}
	}
}

func (s *Surface) Visible() bool {
	return s.State() == SurfaceVisible
}

func (s *Surface) SetZOrderMediaOverlay(overlay bool) {
	s.overlay.Store(overlay)
}

func (s *Surface) Overlay() bool {
	return s.overlay.Load()
}

func (s *Surface) RenderMode() domain.RenderMode {
	return domain.RenderMode(s.mode.Load())
}

func (s *Surface) setRenderMode(m domain.RenderMode) {
	s.mode.Store(int32(m))
}

func (s *Surface) Release() {
	s.state.Store(int32(SurfaceReleased))
}

// Render draws pkt if the surface is visible. It reports false once the
// surface has been released so the caller can stop feeding it.
func (s *Surface) Render(pkt *rtp.Packet) bool {
	switch s.State() {
	case SurfaceReleased:
		return false
	case SurfaceHidden:
		return true
	}
	s.packets.Add(1)
	s.bytes.Add(uint64(len(pkt.Payload)))
	return true
}

// Stats returns the number of packets and payload bytes rendered so far.
func (s *Surface) Stats() (packets, bytes uint64) {
	return s.packets.Load(), s.bytes.Load()
}
