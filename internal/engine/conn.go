package engine

import (
	"github.com/rs/zerolog"

	"github.com/danmuck/relayctl/internal/httpd"
	"github.com/danmuck/relayctl/internal/observability"
	"github.com/danmuck/relayctl/internal/sock"
)

// RecvBufSize caps one buffered request. Longer requests are truncated
// silently and parsed best effort.
const RecvBufSize = 2048

// Conn owns the single socket slot and sequences one exchange per
// connection: receive, route, respond, close. The listener is re-armed
// after every connection; there is never more than one peer in flight.
type Conn struct {
	socket sock.Socket
	router *httpd.Router
	logger zerolog.Logger
	buf    [RecvBufSize]byte
}

func NewConn(socket sock.Socket, router *httpd.Router, logger zerolog.Logger) *Conn {
	return &Conn{socket: socket, router: router, logger: logger}
}

// Poll advances the state machine one tick. Socket errors collapse the
// slot back to closed so the next tick arms a fresh listener; there is no
// distinct error state.
func (c *Conn) Poll() {
	switch c.socket.Status() {
	case sock.StatusClosed:
		if err := c.socket.Open(); err != nil {
			c.logger.Warn().Err(err).Msg("listener_open_failed")
			return
		}
		c.logger.Debug().Msg("listener_armed")
	case sock.StatusInit:
		if err := c.socket.Listen(); err != nil {
			c.logger.Warn().Err(err).Msg("listen_failed")
			_ = c.socket.Close()
		}
	case sock.StatusEstablished:
		c.serveEstablished()
	case sock.StatusCloseWait:
		_ = c.socket.Disconnect()
		observability.RecordConnection("peer_closed")
	default:
		// unrecognized status, re-poll next tick
	}
}

// serveEstablished handles a connected peer. With no bytes available it
// returns immediately and the slot stays established for the next tick.
func (c *Conn) serveEstablished() {
	avail := c.socket.Available()
	if avail <= 0 {
		return
	}
	if avail > RecvBufSize {
		avail = RecvBufSize
	}
	n, err := c.socket.Recv(c.buf[:avail])
	if err != nil {
		c.logger.Warn().Err(err).Msg("recv_failed")
		_ = c.socket.Close()
		observability.RecordConnection("recv_error")
		return
	}

	resp := c.router.Handle(c.buf[:n])

	if err := c.socket.Send(resp.Encode()); err != nil {
		c.logger.Warn().Err(err).Msg("send_failed")
		_ = c.socket.Close()
		observability.RecordConnection("send_error")
		return
	}
	_ = c.socket.Disconnect()
	observability.RecordConnection("served")
}
