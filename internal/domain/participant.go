package domain

import "strconv"

// ParticipantID is the numeric identifier the engine assigns to a remote peer.
// It is unique per peer for the life of a session. Zero asks the engine to
// assign one on join.
type ParticipantID uint32

func (id ParticipantID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Participant is a remote peer that currently owns the rendered slot.
// No transport or surface handles here, only meta-data.
type Participant struct {
	ID    ParticipantID `json:"id"`
	Muted bool          `json:"muted"`
	Bound bool          `json:"bound"`
}

// NewParticipant keeps construction obvious at call sites.
func NewParticipant(id ParticipantID) *Participant {
	return &Participant{ID: id}
}

// OfflineReason tells why a remote participant left the channel.
type OfflineReason int

const (
	OfflineQuit OfflineReason = iota
	OfflineDropped
	OfflineBecameAudience
)

func (r OfflineReason) String() string {
	switch r {
	case OfflineQuit:
		return "quit"
	case OfflineDropped:
		return "dropped"
	case OfflineBecameAudience:
		return "became_audience"
	default:
		return "unknown"
	}
}
