// Package engine drives the relay controller runtime: the single-slot
// connection state machine polled every tick, and the Service lifecycle
// that owns it.
//
// Ownership boundary:
// - socket slot transitions (closed -> init -> established -> close_wait)
// - receive/route/respond/close sequencing for one connection at a time
// - tick loop, heartbeat, signal shutdown, ops server supervision
//
// The machine never blocks: every tick either completes one exchange or
// returns immediately, so a slow client can delay the next connection but
// never stall the process.
package engine
