package core

import (
	"fmt"

	"github.com/dkeye/VideoCall/internal/domain"
)

type EventKind int

const (
	EventJoinChannelSuccess EventKind = iota + 1
	EventUserJoined
	EventUserOffline
	EventUserMuteVideo
	EventConnectionLost
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventJoinChannelSuccess:
		return "join_channel_success"
	case EventUserJoined:
		return "user_joined"
	case EventUserOffline:
		return "user_offline"
	case EventUserMuteVideo:
		return "user_mute_video"
	case EventConnectionLost:
		return "connection_lost"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// EngineEvent is a typed engine callback. Only the fields relevant to Kind
// are set.
type EngineEvent struct {
	Kind    EventKind
	UID     domain.ParticipantID
	Channel domain.ChannelName
	Muted   bool
	Reason  domain.OfflineReason
	Err     error
}

// EventSink receives engine callbacks. Deliver may be called from any
// goroutine and must not touch rendering state directly.
type EventSink interface {
	Deliver(ev EngineEvent)
}

func UserJoined(uid domain.ParticipantID) EngineEvent {
	return EngineEvent{Kind: EventUserJoined, UID: uid}
}

func UserOffline(uid domain.ParticipantID, reason domain.OfflineReason) EngineEvent {
	return EngineEvent{Kind: EventUserOffline, UID: uid, Reason: reason}
}

func UserMuteVideo(uid domain.ParticipantID, muted bool) EngineEvent {
	return EngineEvent{Kind: EventUserMuteVideo, UID: uid, Muted: muted}
}
