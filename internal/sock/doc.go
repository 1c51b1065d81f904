// Package sock models the single-socket transport boundary beneath the
// relay controller engine.
//
// Ownership boundary:
// - socket status model (CLOSED/INIT/ESTABLISHED/CLOSE_WAIT)
// - non-blocking Socket operations consumed by the engine
// - TCP adapter reproducing the offload-chip register semantics on a host
// - scripted fake for engine and router tests
//
// Everything beneath the Socket interface (connection establishment,
// retransmission, checksums) belongs to the OS TCP stack and is not
// modeled here.
package sock
