package rtc

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/pion/interceptor"
	"github.com/pion/rtp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurface(t *testing.T) {
	t.Parallel()

	t.Run("renders_only_when_visible", func(t *testing.T) {
		t.Parallel()
		s := NewSurface()
		require.True(t, s.Visible())

		assert.True(t, s.Render(&rtp.Packet{Payload: []byte{1, 2, 3}}))
		s.SetVisible(false)
		assert.True(t, s.Render(&rtp.Packet{Payload: []byte{4}}))

		packets, bytes := s.Stats()
		assert.Equal(t, uint64(1), packets)
		assert.Equal(t, uint64(3), bytes)
	})

	t.Run("release_is_final", func(t *testing.T) {
		t.Parallel()
		s := NewSurface()
		s.Release()
		s.SetVisible(true)

		assert.Equal(t, SurfaceReleased, s.State())
		assert.False(t, s.Visible())
		assert.False(t, s.Render(&rtp.Packet{}))
	})

	t.Run("overlay", func(t *testing.T) {
		t.Parallel()
		s := NewSurface()
		s.SetZOrderMediaOverlay(true)
		assert.True(t, s.Overlay())
		s.SetZOrderMediaOverlay(false)
		assert.False(t, s.Overlay())
	})
}

type chanSource chan *rtp.Packet

func (c chanSource) ReadRTP() (*rtp.Packet, interceptor.Attributes, error) {
	pkt, ok := <-c
	if !ok {
		return nil, nil, io.EOF
	}
	return pkt, nil, nil
}

func rendered(s *Surface) uint64 {
	n, _ := s.Stats()
	return n
}

func TestRendererSet(t *testing.T) {
	t.Parallel()

	t.Run("starts_when_both_sides_present", func(t *testing.T) {
		t.Parallel()
		set := newRendererSet(zerolog.Nop())
		src := make(chanSource, 4)
		defer close(src)

		set.AddTrack(context.Background(), 42, src)
		assert.False(t, set.Running(42))

		surface := NewSurface()
		set.Bind(42, surface)
		require.True(t, set.Running(42))

		src <- &rtp.Packet{Payload: []byte{0xff}}
		require.Eventually(t, func() bool { return rendered(surface) == 1 }, time.Second, 5*time.Millisecond)
	})

	t.Run("surface_first", func(t *testing.T) {
		t.Parallel()
		set := newRendererSet(zerolog.Nop())
		surface := NewSurface()
		set.Bind(7, surface)
		assert.False(t, set.Running(7))

		src := make(chanSource, 1)
		defer close(src)
		set.AddTrack(context.Background(), 7, src)
		assert.True(t, set.Running(7))
	})

	t.Run("hidden_surface_skips_frames", func(t *testing.T) {
		t.Parallel()
		set := newRendererSet(zerolog.Nop())
		src := make(chanSource)
		defer close(src)
		surface := NewSurface()
		surface.SetVisible(false)
		set.Bind(1, surface)
		set.AddTrack(context.Background(), 1, src)

		src <- &rtp.Packet{Payload: []byte{1}}
		src <- &rtp.Packet{Payload: []byte{2}}
		assert.Zero(t, rendered(surface))

		surface.SetVisible(true)
		src <- &rtp.Packet{Payload: []byte{3}}
		require.Eventually(t, func() bool { return rendered(surface) >= 1 }, time.Second, 5*time.Millisecond)
	})

	t.Run("remove_forgets_binding", func(t *testing.T) {
		t.Parallel()
		set := newRendererSet(zerolog.Nop())
		src := make(chanSource)
		defer close(src)
		set.Bind(9, NewSurface())
		set.AddTrack(context.Background(), 9, src)
		require.True(t, set.Running(9))

		set.Remove(9)
		assert.False(t, set.Running(9))

		set.AddTrack(context.Background(), 9, src)
		assert.False(t, set.Running(9))
	})

	t.Run("rebind_leaves_old_surface_untouched", func(t *testing.T) {
		t.Parallel()
		set := newRendererSet(zerolog.Nop())
		src := make(chanSource)
		defer close(src)
		old := NewSurface()
		set.Bind(3, old)
		set.AddTrack(context.Background(), 3, src)

		src <- &rtp.Packet{Payload: []byte{1}}
		require.Eventually(t, func() bool { return rendered(old) == 1 }, time.Second, 5*time.Millisecond)

		next := NewSurface()
		set.Bind(3, next)
		for i := 0; i < 5; i++ {
			src <- &rtp.Packet{Payload: []byte{2}}
		}
		require.Eventually(t, func() bool { return rendered(next) >= 1 }, time.Second, 5*time.Millisecond)
		assert.Equal(t, uint64(1), rendered(old))
	})

	t.Run("stop_all", func(t *testing.T) {
		t.Parallel()
		set := newRendererSet(zerolog.Nop())
		a, b := make(chanSource), make(chanSource)
		defer close(a)
		defer close(b)
		set.Bind(1, NewSurface())
		set.Bind(2, NewSurface())
		set.AddTrack(context.Background(), 1, a)
		set.AddTrack(context.Background(), 2, b)

		set.StopAll()
		assert.False(t, set.Running(1))
		assert.False(t, set.Running(2))
	})
}
