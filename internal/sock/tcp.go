package sock

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

const (
	// pollGrace bounds every accept/read attempt. Pending work completes
	// immediately; an idle socket costs at most this much per poll.
	pollGrace = time.Millisecond

	sendTimeout = 5 * time.Second
)

// TCPSocket adapts one net.TCPListener plus at most one accepted
// connection to the non-blocking Socket slot the engine polls. Not safe
// for concurrent use; the engine owns it exclusively.
type TCPSocket struct {
	addr      string
	ln        *net.TCPListener
	conn      *net.TCPConn
	rbuf      []byte
	staging   [2048]byte
	closeWait bool
}

func NewTCPSocket(addr string) *TCPSocket {
	return &TCPSocket{addr: addr}
}

// Addr reports the bound listener address, or the configured one before
// Open. Useful when the configured port is 0.
func (s *TCPSocket) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

func (s *TCPSocket) Open() error {
	if s.ln != nil {
		return nil
	}
	laddr, err := net.ResolveTCPAddr("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("sock: resolve %s: %w", s.addr, err)
	}
	ln, err := net.ListenTCP("tcp", laddr)
	if err != nil {
		return fmt.Errorf("sock: listen %s: %w", s.addr, err)
	}
	s.ln = ln
	s.closeWait = false
	s.rbuf = nil
	return nil
}

func (s *TCPSocket) Listen() error {
	if s.ln == nil {
		return ErrNotOpen
	}
	// ListenTCP already queues peers; nothing further to arm.
	return nil
}

func (s *TCPSocket) Status() Status {
	s.poll()
	switch {
	case s.conn != nil && s.closeWait && len(s.rbuf) == 0:
		return StatusCloseWait
	case s.conn != nil:
		return StatusEstablished
	case s.ln != nil:
		return StatusInit
	default:
		return StatusClosed
	}
}

func (s *TCPSocket) Available() int {
	s.poll()
	return len(s.rbuf)
}

func (s *TCPSocket) Recv(buf []byte) (int, error) {
	s.poll()
	if s.conn == nil && len(s.rbuf) == 0 {
		return 0, ErrNotConnected
	}
	n := copy(buf, s.rbuf)
	s.rbuf = s.rbuf[n:]
	return n, nil
}

func (s *TCPSocket) Send(data []byte) error {
	if s.conn == nil {
		return ErrNotConnected
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(sendTimeout)); err != nil {
		return fmt.Errorf("sock: set write deadline: %w", err)
	}
	if _, err := s.conn.Write(data); err != nil {
		s.reset()
		return fmt.Errorf("sock: send: %w", err)
	}
	return nil
}

func (s *TCPSocket) Disconnect() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	s.closeWait = false
	s.rbuf = nil
	if err != nil {
		return fmt.Errorf("sock: disconnect: %w", err)
	}
	return nil
}

func (s *TCPSocket) Close() error {
	s.reset()
	return nil
}

func (s *TCPSocket) reset() {
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	if s.ln != nil {
		_ = s.ln.Close()
		s.ln = nil
	}
	s.closeWait = false
	s.rbuf = nil
}

// poll advances peer-driven transitions: accept a pending connection when
// the slot is free, stage any received bytes, and observe a peer close.
// Hard transport faults collapse the slot to CLOSED so the engine re-arms
// a fresh listener on its next tick.
func (s *TCPSocket) poll() {
	if s.ln != nil && s.conn == nil {
		_ = s.ln.SetDeadline(time.Now().Add(pollGrace))
		conn, err := s.ln.AcceptTCP()
		switch {
		case err == nil:
			s.conn = conn
			s.closeWait = false
			s.rbuf = nil
		case isTimeout(err):
			// no pending peer this tick
		default:
			s.reset()
			return
		}
	}
	if s.conn != nil && !s.closeWait {
		_ = s.conn.SetReadDeadline(time.Now().Add(pollGrace))
		n, err := s.conn.Read(s.staging[:])
		if n > 0 {
			s.rbuf = append(s.rbuf, s.staging[:n]...)
		}
		switch {
		case err == nil, isTimeout(err):
		case errors.Is(err, io.EOF):
			s.closeWait = true
		default:
			s.reset()
		}
	}
}

func isTimeout(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
