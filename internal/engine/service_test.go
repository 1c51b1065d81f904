package engine

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/relayctl/internal/relay"
	"github.com/danmuck/relayctl/internal/sock"
	"github.com/danmuck/relayctl/internal/testutil/testlog"
)

func TestBootstrapValidation(t *testing.T) {
	testlog.Start(t)

	cfg := DefaultServiceConfig()
	cfg.TickInterval = 0
	if err := NewServiceWithConfig(cfg).bootstrap(); !errors.Is(err, ErrInvalidTickInterval) {
		t.Fatalf("expected ErrInvalidTickInterval, got %v", err)
	}

	cfg = DefaultServiceConfig()
	cfg.HeartbeatInterval = 0
	if err := NewServiceWithConfig(cfg).bootstrap(); !errors.Is(err, ErrInvalidHeartbeatInterval) {
		t.Fatalf("expected ErrInvalidHeartbeatInterval, got %v", err)
	}

	cfg = DefaultServiceConfig()
	cfg.ListenAddr = ""
	if err := NewServiceWithConfig(cfg).bootstrap(); !errors.Is(err, ErrMissingListenAddr) {
		t.Fatalf("expected ErrMissingListenAddr, got %v", err)
	}
}

func TestBootstrapBuildsBankAllOff(t *testing.T) {
	testlog.Start(t)

	cfg := DefaultServiceConfig()
	cfg.ListenAddr = "127.0.0.1:0"
	cfg.Driver = relay.NopDriver{}
	svc := NewServiceWithConfig(cfg)
	if err := svc.bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer svc.sck.Close()

	for _, s := range svc.Bank().Snapshot() {
		if s != relay.Off {
			t.Fatalf("relay not off after bootstrap")
		}
	}
}

func TestServeHandlesLiveExchange(t *testing.T) {
	testlog.Start(t)

	cfg := DefaultServiceConfig()
	cfg.ListenAddr = "127.0.0.1:0"
	cfg.Driver = relay.NopDriver{}
	svc := NewServiceWithConfig(cfg)
	if err := svc.bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	// arm the listener before handing the slot to the serve loop so the
	// bound port is known
	svc.conn.Poll()
	addr := svc.sck.(*sock.TCPSocket).Addr()
	if strings.HasSuffix(addr, ":0") {
		t.Fatalf("listener never armed: %q", addr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.serve(ctx) }()

	resp, err := exchange(t, addr, "POST /api/relay/4 HTTP/1.1\r\nContent-Length: 11\r\n\r\n{\"state\":1}")
	if err != nil {
		cancel()
		t.Fatalf("exchange: %v", err)
	}
	if !strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n") || !strings.HasSuffix(resp, `{"success":true}`) {
		cancel()
		t.Fatalf("unexpected response: %q", resp)
	}
	if svc.Bank().Get(4) != relay.On {
		cancel()
		t.Fatalf("relay 4 not switched by live request")
	}

	resp, err = exchange(t, addr, "GET /api/relays HTTP/1.1\r\n\r\n")
	if err != nil {
		cancel()
		t.Fatalf("snapshot exchange: %v", err)
	}
	if !strings.Contains(resp, `"relay_4":{"state":1}`) {
		cancel()
		t.Fatalf("snapshot missing switch: %q", resp)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("serve did not stop on cancel")
	}
}

func exchange(t *testing.T, addr, request string) (string, error) {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		return "", err
	}
	defer conn.Close()
	if err := conn.SetDeadline(time.Now().Add(2 * time.Second)); err != nil {
		return "", err
	}
	if _, err := conn.Write([]byte(request)); err != nil {
		return "", err
	}
	raw, err := io.ReadAll(conn)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
