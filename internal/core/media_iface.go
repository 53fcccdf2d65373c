package core

//go:generate mockgen -source=media_iface.go -destination=mock/media_iface.go -package=mock_core

import "github.com/dkeye/VideoCall/internal/domain"

// MediaEngine creates engine sessions. The engine's transport, codecs and
// NAT traversal stay behind this interface.
type MediaEngine interface {
	// Create initializes a session for appID. Events are delivered to sink
	// from engine-owned goroutines.
	Create(appID string, sink EventSink) (EngineSession, error)
}

// EngineSession is the opaque handle returned by MediaEngine.Create.
// Destroy invalidates it.
type EngineSession interface {
	EnableVideo() error
	SetVideoEncoderConfiguration(profile domain.VideoProfile) error
	// JoinChannel is asynchronous; success or failure arrives as events.
	JoinChannel(token string, channel domain.ChannelName, info string, uid domain.ParticipantID) error
	LeaveChannel() error
	Destroy()

	MuteLocalVideoStream(muted bool) error
	MuteLocalAudioStream(muted bool) error
	SwitchCamera() error

	CreateRendererSurface() (Surface, error)
	SetupLocalVideo(s Surface) error
	SetupRemoteVideo(s Surface, mode domain.RenderMode, uid domain.ParticipantID) error
}

// Surface is a rendering target owned by whoever created it.
type Surface interface {
	SetVisible(visible bool)
	Visible() bool
	SetZOrderMediaOverlay(overlay bool)
	Release()
}
