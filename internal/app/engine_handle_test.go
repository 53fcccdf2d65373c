package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_core "github.com/dkeye/VideoCall/internal/core/mock"
	"github.com/dkeye/VideoCall/internal/domain"
)

func newTestHandle(t *testing.T) (*EngineHandle, *mock_core.MockEngineSession) {
	t.Helper()
	ctrl := gomock.NewController(t)
	engine := mock_core.NewMockMediaEngine(ctrl)
	sess := mock_core.NewMockEngineSession(ctrl)
	engine.EXPECT().Create("appid", nil).Return(sess, nil)

	h, err := CreateEngine(engine, "appid", nil)
	require.NoError(t, err)
	return h, sess
}

func TestCreateEngine(t *testing.T) {
	t.Parallel()

	t.Run("failure", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		engine := mock_core.NewMockMediaEngine(ctrl)
		engine.EXPECT().Create("", nil).Return(nil, domain.ErrInvalidAppID)

		h, err := CreateEngine(engine, "", nil)
		assert.Nil(t, h)

		var cerr *domain.EngineCreateError
		require.ErrorAs(t, err, &cerr)
		assert.ErrorIs(t, err, domain.ErrInvalidAppID)
	})
}

func TestEngineHandle_ConfigureVideo(t *testing.T) {
	t.Parallel()

	t.Run("idempotent_before_join", func(t *testing.T) {
		t.Parallel()
		h, sess := newTestHandle(t)
		p := domain.DefaultVideoProfile()
		sess.EXPECT().EnableVideo().Return(nil)
		sess.EXPECT().SetVideoEncoderConfiguration(p).Return(nil)

		require.NoError(t, h.ConfigureVideo(p))
		require.NoError(t, h.ConfigureVideo(p))
	})

	t.Run("after_join", func(t *testing.T) {
		t.Parallel()
		h, sess := newTestHandle(t)
		sess.EXPECT().JoinChannel("", domain.ChannelName("room"), "info", domain.ParticipantID(0)).Return(nil)

		require.NoError(t, h.Join("room", "", "info"))
		assert.ErrorIs(t, h.ConfigureVideo(domain.DefaultVideoProfile()), domain.ErrAlreadyJoined)
	})
}

func TestEngineHandle_Teardown(t *testing.T) {
	t.Parallel()

	t.Run("leave_then_destroy_once", func(t *testing.T) {
		t.Parallel()
		h, sess := newTestHandle(t)
		gomock.InOrder(
			sess.EXPECT().LeaveChannel().Return(nil).Times(1),
			sess.EXPECT().Destroy().Times(1),
		)

		assert.True(t, h.Teardown())
		assert.False(t, h.Teardown())
		assert.False(t, h.Alive())
	})

	t.Run("leave_error_still_destroys", func(t *testing.T) {
		t.Parallel()
		h, sess := newTestHandle(t)
		gomock.InOrder(
			sess.EXPECT().LeaveChannel().Return(errors.New("not in channel")),
			sess.EXPECT().Destroy(),
		)

		assert.True(t, h.Teardown())
	})

	t.Run("commands_after_teardown_are_noops", func(t *testing.T) {
		t.Parallel()
		h, sess := newTestHandle(t)
		sess.EXPECT().LeaveChannel().Return(nil)
		sess.EXPECT().Destroy()
		require.True(t, h.Teardown())

		// The mock fails the test on any unexpected call.
		assert.NoError(t, h.MuteLocalVideo(true))
		assert.NoError(t, h.MuteLocalAudio(true))
		assert.NoError(t, h.SwitchCamera())
		assert.ErrorIs(t, h.Join("room", "", ""), domain.ErrEngineDestroyed)
		_, err := h.CreateRendererSurface()
		assert.ErrorIs(t, err, domain.ErrEngineDestroyed)
	})
}

func TestEngineHandle_CommandFailure(t *testing.T) {
	t.Parallel()
	h, sess := newTestHandle(t)
	sess.EXPECT().SwitchCamera().Return(errors.New("single camera"))

	err := h.SwitchCamera()

	var cerr *domain.CommandError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "switch_camera", cerr.Op)
	assert.True(t, h.Alive())
}
