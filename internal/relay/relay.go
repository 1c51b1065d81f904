package relay

import (
	"errors"
	"fmt"
	"sync"

	"github.com/danmuck/relayctl/internal/observability"
)

// ChannelCount is fixed by the board: eight relay outputs, numbered 1..8
// in the external protocol.
const ChannelCount = 8

var ErrChannelRange = errors.New("relay: channel out of range")

// State is one relay output value.
type State uint8

const (
	Off State = 0
	On  State = 1
)

func (s State) String() string {
	if s == On {
		return "ON"
	}
	return "OFF"
}

// Wire returns the 0/1 encoding used by the HTTP API.
func (s State) Wire() int {
	if s == On {
		return 1
	}
	return 0
}

// Driver applies a relay state to a physical output channel. Electrical
// sequencing and pin mapping live behind this boundary.
type Driver interface {
	Apply(channel int, s State) error
}

// Bank owns the process-wide relay states. All mutation goes through Set
// and SetAll so the driver and the stored state never diverge. The engine
// mutates the bank single-threaded; the ops server reads snapshots
// concurrently, hence the lock.
type Bank struct {
	mu     sync.RWMutex
	states [ChannelCount]State
	driver Driver
}

// NewBank constructs a bank with every channel forced Off through the driver.
func NewBank(driver Driver) *Bank {
	b := &Bank{driver: driver}
	for ch := 1; ch <= ChannelCount; ch++ {
		_ = driver.Apply(ch, Off)
	}
	return b
}

// Set drives one channel. Channel numbers are 1-based; anything outside
// 1..8 is rejected without touching the driver.
func (b *Bank) Set(channel int, s State) error {
	if channel < 1 || channel > ChannelCount {
		return fmt.Errorf("%w: %d", ErrChannelRange, channel)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.driver.Apply(channel, s); err != nil {
		return fmt.Errorf("relay: drive channel %d: %w", channel, err)
	}
	b.states[channel-1] = s
	observability.RecordRelaySwitch(channel, s.Wire())
	return nil
}

// SetAll drives every channel to the same state.
func (b *Bank) SetAll(s State) {
	for ch := 1; ch <= ChannelCount; ch++ {
		_ = b.Set(ch, s)
	}
}

// Get reads one channel. Out-of-range channels report Off.
func (b *Bank) Get(channel int) State {
	if channel < 1 || channel > ChannelCount {
		return Off
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.states[channel-1]
}

// Snapshot copies the full bank in channel order.
func (b *Bank) Snapshot() [ChannelCount]State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.states
}
