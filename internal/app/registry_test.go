package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/VideoCall/internal/domain"
)

func TestParticipantRegistry_OnJoined(t *testing.T) {
	t.Parallel()

	t.Run("first_join_occupies_slot", func(t *testing.T) {
		t.Parallel()
		b := newFakeBinder()
		r := NewParticipantRegistry(b)

		assert.True(t, r.OnJoined(42))

		p, ok := r.Occupant()
		require.True(t, ok)
		assert.Equal(t, domain.ParticipantID(42), p.ID)
		assert.True(t, p.Bound)
		assert.False(t, p.Muted)
		assert.Contains(t, b.bound, domain.ParticipantID(42))
	})

	// 77 joins before 42 leaves.
	t.Run("second_join_ignored", func(t *testing.T) {
		t.Parallel()
		b := newFakeBinder()
		r := NewParticipantRegistry(b)

		require.True(t, r.OnJoined(42))
		assert.False(t, r.OnJoined(77))

		p, ok := r.Occupant()
		require.True(t, ok)
		assert.Equal(t, domain.ParticipantID(42), p.ID)
		assert.Len(t, b.created, 1)
		_, ok = r.Surface(77)
		assert.False(t, ok)
	})

	t.Run("slot_reusable_after_leave", func(t *testing.T) {
		t.Parallel()
		b := newFakeBinder()
		r := NewParticipantRegistry(b)

		require.True(t, r.OnJoined(42))
		require.True(t, r.OnLeft(42, domain.OfflineQuit))
		assert.True(t, r.OnJoined(77))

		p, _ := r.Occupant()
		assert.Equal(t, domain.ParticipantID(77), p.ID)
		assert.True(t, b.created[0].isReleased())
	})

	t.Run("surface_failure_leaves_slot_empty", func(t *testing.T) {
		t.Parallel()
		b := newFakeBinder()
		b.failAt = 0
		r := NewParticipantRegistry(b)

		assert.False(t, r.OnJoined(42))
		_, ok := r.Occupant()
		assert.False(t, ok)
	})

	t.Run("at_most_one_occupant", func(t *testing.T) {
		t.Parallel()
		b := newFakeBinder()
		r := NewParticipantRegistry(b)

		for _, uid := range []domain.ParticipantID{5, 6, 7, 8, 9} {
			r.OnJoined(uid)
			assert.LessOrEqual(t, len(r.views), 1)
		}
		p, _ := r.Occupant()
		assert.Equal(t, domain.ParticipantID(5), p.ID)
	})
}

func TestParticipantRegistry_IdentifierMatching(t *testing.T) {
	t.Parallel()

	t.Run("mute_for_other_uid_ignored", func(t *testing.T) {
		t.Parallel()
		b := newFakeBinder()
		r := NewParticipantRegistry(b)
		require.True(t, r.OnJoined(42))

		assert.False(t, r.OnVideoMuted(77, true))
		assert.True(t, b.created[0].Visible())
		p, _ := r.Occupant()
		assert.False(t, p.Muted)
	})

	t.Run("leave_for_other_uid_ignored", func(t *testing.T) {
		t.Parallel()
		b := newFakeBinder()
		r := NewParticipantRegistry(b)
		require.True(t, r.OnJoined(42))

		assert.False(t, r.OnLeft(77, domain.OfflineDropped))
		p, ok := r.Occupant()
		require.True(t, ok)
		assert.Equal(t, domain.ParticipantID(42), p.ID)
		assert.False(t, b.created[0].isReleased())
	})

	t.Run("events_on_empty_slot_ignored", func(t *testing.T) {
		t.Parallel()
		r := NewParticipantRegistry(newFakeBinder())

		assert.False(t, r.OnVideoMuted(42, true))
		assert.False(t, r.OnLeft(42, domain.OfflineQuit))
	})

	t.Run("mute_toggles_occupant_visibility", func(t *testing.T) {
		t.Parallel()
		b := newFakeBinder()
		r := NewParticipantRegistry(b)
		require.True(t, r.OnJoined(42))

		require.True(t, r.OnVideoMuted(42, true))
		assert.False(t, b.created[0].Visible())
		p, _ := r.Occupant()
		assert.True(t, p.Muted)

		require.True(t, r.OnVideoMuted(42, false))
		assert.True(t, b.created[0].Visible())
	})

	t.Run("stale_after_occupant_change", func(t *testing.T) {
		t.Parallel()
		b := newFakeBinder()
		r := NewParticipantRegistry(b)
		require.True(t, r.OnJoined(42))
		require.True(t, r.OnLeft(42, domain.OfflineQuit))
		require.True(t, r.OnJoined(77))

		assert.False(t, r.OnVideoMuted(42, true))
		assert.True(t, b.created[1].Visible())
	})
}

func TestParticipantRegistry_Clear(t *testing.T) {
	t.Parallel()
	b := newFakeBinder()
	r := NewParticipantRegistry(b)
	require.True(t, r.OnJoined(42))

	r.Clear()

	_, ok := r.Occupant()
	assert.False(t, ok)
	assert.True(t, b.created[0].isReleased())
}
