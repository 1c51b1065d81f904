package sock

import "errors"

var (
	ErrNotOpen      = errors.New("sock: socket not open")
	ErrNotConnected = errors.New("sock: no peer connected")
)

// Status is the observable socket slot state. The values mirror the
// hardware register states of the Ethernet offload chip the controller
// was designed around.
type Status uint8

const (
	StatusClosed Status = iota
	StatusInit
	StatusEstablished
	StatusCloseWait
)

func (s Status) String() string {
	switch s {
	case StatusClosed:
		return "closed"
	case StatusInit:
		return "init"
	case StatusEstablished:
		return "established"
	case StatusCloseWait:
		return "close_wait"
	default:
		return "unknown"
	}
}

// Socket is the single reusable transport slot the engine polls. No
// operation blocks: Available reports buffered bytes without reading,
// Recv returns only what is already buffered, and state transitions
// driven by the peer (connect, close) are observed through Status.
type Socket interface {
	// Status reports the current slot state, folding in any transition
	// the transport observed since the last poll.
	Status() Status
	// Open arms a passive listening endpoint (CLOSED -> INIT).
	Open() error
	// Listen begins accepting (INIT -> listening). The transition to
	// ESTABLISHED happens when a peer connects and is observed, not
	// initiated.
	Listen() error
	// Available reports how many received bytes can be read right now.
	Available() int
	// Recv copies buffered bytes into buf, up to len(buf).
	Recv(buf []byte) (int, error)
	// Send writes the full payload to the connected peer.
	Send(data []byte) error
	// Disconnect closes the current peer connection, keeping the
	// listening endpoint armed for the next one.
	Disconnect() error
	// Close releases the connection and the listener outright.
	Close() error
}
