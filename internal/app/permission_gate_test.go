package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_core "github.com/dkeye/VideoCall/internal/core/mock"
	"github.com/dkeye/VideoCall/internal/domain"
)

func TestPermissionGate_RequestAll(t *testing.T) {
	t.Parallel()

	t.Run("both_granted", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		p := mock_core.NewMockPermissionPrompter(ctrl)
		gomock.InOrder(
			p.EXPECT().Request(gomock.Any(), domain.Microphone).Return(true, nil),
			p.EXPECT().Request(gomock.Any(), domain.Camera).Return(true, nil),
		)

		g := NewPermissionGate(p)
		require.NoError(t, g.RequestAll(context.Background()))
		assert.True(t, g.State().AllGranted())
	})

	t.Run("microphone_denied", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		p := mock_core.NewMockPermissionPrompter(ctrl)
		p.EXPECT().Request(gomock.Any(), domain.Microphone).Return(false, nil)

		g := NewPermissionGate(p)
		err := g.RequestAll(context.Background())

		var denied *domain.PermissionDeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, domain.Microphone, denied.Capability)
		assert.Equal(t, domain.PermissionDenied, g.State()[domain.Microphone])
		assert.Equal(t, domain.PermissionUnrequested, g.State()[domain.Camera])
	})

	t.Run("camera_denied", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		p := mock_core.NewMockPermissionPrompter(ctrl)
		gomock.InOrder(
			p.EXPECT().Request(gomock.Any(), domain.Microphone).Return(true, nil),
			p.EXPECT().Request(gomock.Any(), domain.Camera).Return(false, nil),
		)

		g := NewPermissionGate(p)
		err := g.RequestAll(context.Background())

		var denied *domain.PermissionDeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, domain.Camera, denied.Capability)
	})

	t.Run("prompter_error_is_denial", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		p := mock_core.NewMockPermissionPrompter(ctrl)
		p.EXPECT().Request(gomock.Any(), domain.Microphone).Return(false, errors.New("prompt timed out"))

		g := NewPermissionGate(p)
		var denied *domain.PermissionDeniedError
		require.ErrorAs(t, g.RequestAll(context.Background()), &denied)
		assert.Equal(t, domain.Microphone, denied.Capability)
	})

	t.Run("reuse_skips_granted", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		p := mock_core.NewMockPermissionPrompter(ctrl)
		gomock.InOrder(
			p.EXPECT().Request(gomock.Any(), domain.Microphone).Return(true, nil),
			p.EXPECT().Request(gomock.Any(), domain.Camera).Return(false, nil),
			p.EXPECT().Request(gomock.Any(), domain.Camera).Return(true, nil),
		)

		g := NewPermissionGate(p)
		require.Error(t, g.RequestAll(context.Background()))
		require.NoError(t, g.RequestAll(context.Background()))
		assert.True(t, g.State().AllGranted())
	})
}
