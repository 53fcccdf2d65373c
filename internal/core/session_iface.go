package core

import "github.com/dkeye/VideoCall/internal/domain"

// SessionObserver is notified from the controller loop after every state
// change. Implementations must not block.
type SessionObserver interface {
	OnSessionChanged(snap domain.Snapshot)
}
