package core

// Frame is a raw binary payload.
type Frame []byte

// SignalConnection abstracts an outbound notification transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
