package orch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dkeye/VideoCall/internal/app"
	mock_core "github.com/dkeye/VideoCall/internal/core/mock"
	"github.com/dkeye/VideoCall/internal/domain"
)

type recordingObserver struct {
	states chan domain.SessionState
}

func (o *recordingObserver) OnSessionChanged(s domain.Snapshot) {
	select {
	case o.states <- s.State:
	default:
	}
}

func TestManager(t *testing.T) {
	t.Parallel()

	t.Run("restart_after_denial", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		engine := mock_core.NewMockMediaEngine(ctrl)
		prompter := mock_core.NewMockPermissionPrompter(ctrl)
		obs := &recordingObserver{states: make(chan domain.SessionState, 32)}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		gomock.InOrder(
			prompter.EXPECT().Request(gomock.Any(), domain.Microphone).Return(true, nil),
			prompter.EXPECT().Request(gomock.Any(), domain.Camera).Return(false, nil),
			// microphone is remembered, only camera is asked again
			prompter.EXPECT().Request(gomock.Any(), domain.Camera).Return(false, nil),
		)

		m := NewManager(ctx, engine, app.NewPermissionGate(prompter), testOptions(), obs)
		first, err := m.Start("room")
		require.NoError(t, err)
		<-first.Done()
		assert.Equal(t, domain.StateTerminated, first.State())

		second, err := m.Start("room")
		require.NoError(t, err)
		<-second.Done()

		cur, ok := m.Current()
		require.True(t, ok)
		assert.Equal(t, second.ID(), cur.ID())
		assert.NotEqual(t, first.ID(), second.ID())
		assert.Contains(t, drain(obs.states), domain.StateAwaitingPermissions)
	})

	t.Run("one_live_session", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		engine := mock_core.NewMockMediaEngine(ctrl)
		prompter := mock_core.NewMockPermissionPrompter(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		prompter.EXPECT().Request(gomock.Any(), domain.Microphone).DoAndReturn(
			func(ctx context.Context, _ domain.Capability) (bool, error) {
				<-ctx.Done()
				return false, ctx.Err()
			})

		m := NewManager(ctx, engine, app.NewPermissionGate(prompter), testOptions())
		_, err := m.Start("room")
		require.NoError(t, err)

		_, err = m.Start("other")
		assert.ErrorIs(t, err, domain.ErrSessionExists)

		m.Shutdown()
		cur, _ := m.Current()
		assert.Equal(t, domain.StateTerminated, cur.State())
	})

	t.Run("empty_channel", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		m := NewManager(context.Background(), mock_core.NewMockMediaEngine(ctrl),
			app.NewPermissionGate(mock_core.NewMockPermissionPrompter(ctrl)), testOptions())

		_, err := m.Start("")
		assert.ErrorIs(t, err, domain.ErrChannelNameEmpty)
		_, ok := m.Current()
		assert.False(t, ok)
	})
}

func drain(ch chan domain.SessionState) []domain.SessionState {
	var out []domain.SessionState
	for {
		select {
		case s := <-ch:
			out = append(out, s)
		case <-time.After(10 * time.Millisecond):
			return out
		}
	}
}
