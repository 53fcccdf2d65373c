package domain

// SessionState is the lifecycle of one call.
type SessionState string

const (
	StateIdle                SessionState = "idle"
	StateAwaitingPermissions SessionState = "awaiting_permissions"
	StateInitializing        SessionState = "initializing"
	StateActive              SessionState = "active"
	StateTerminated          SessionState = "terminated"
)

// LocalMediaState mirrors the local mute toggles.
type LocalMediaState struct {
	VideoMuted     bool `json:"video_muted"`
	AudioMuted     bool `json:"audio_muted"`
	PreviewVisible bool `json:"preview_visible"`
}

// Snapshot is a read-only view of a session for APIs.
type Snapshot struct {
	ID          string          `json:"id"`
	Channel     ChannelName     `json:"channel"`
	State       SessionState    `json:"state"`
	Local       LocalMediaState `json:"local"`
	Remote      *Participant    `json:"remote,omitempty"`
	LocalUID    ParticipantID   `json:"local_uid,omitempty"`
	Joined      bool            `json:"joined"`
	Permissions PermissionState `json:"permissions"`
	Reason      string          `json:"reason,omitempty"`
}
