package engine

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/danmuck/relayctl/internal/httpd"
	"github.com/danmuck/relayctl/internal/logging"
	"github.com/danmuck/relayctl/internal/observability"
	"github.com/danmuck/relayctl/internal/ops"
	"github.com/danmuck/relayctl/internal/relay"
	"github.com/danmuck/relayctl/internal/sock"
	"github.com/danmuck/relayctl/internal/webui"
)

var (
	ErrInvalidTickInterval      = errors.New("engine: invalid tick interval")
	ErrInvalidHeartbeatInterval = errors.New("engine: invalid heartbeat interval")
	ErrMissingListenAddr        = errors.New("engine: missing listen address")
)

// ServiceConfig configures the controller runtime defaults.
type ServiceConfig struct {
	// ListenAddr is the device socket address serving the relay protocol.
	ListenAddr string
	// TickInterval paces the poll loop.
	TickInterval time.Duration
	// HeartbeatInterval paces the liveness log line.
	HeartbeatInterval time.Duration
	// OpsListenAddr serves /metrics and /healthz; empty disables the ops
	// server entirely.
	OpsListenAddr string
	// Driver receives every relay switch. Nil selects the logging driver.
	Driver relay.Driver
}

// Controller runtime defaults for standalone operation.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		ListenAddr:        ":8080",
		TickInterval:      time.Millisecond,
		HeartbeatInterval: 30 * time.Second,
		OpsListenAddr:     "",
	}
}

// Service runs the relay controller lifecycle as a standalone process.
type Service struct {
	cfg    ServiceConfig
	logger zerolog.Logger

	bank *relay.Bank
	conn *Conn
	sck  sock.Socket
}

// Controller service constructor using default standalone config.
func NewService() *Service {
	return NewServiceWithConfig(DefaultServiceConfig())
}

// Controller service constructor using explicit config.
func NewServiceWithConfig(cfg ServiceConfig) *Service {
	return &Service{cfg: cfg}
}

// Bank exposes the relay store; nil before Run has bootstrapped.
func (s *Service) Bank() *relay.Bank {
	return s.bank
}

// Controller runtime entrypoint that blocks until process signal shutdown.
func (s *Service) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := s.bootstrap(); err != nil {
		return err
	}
	return s.serve(ctx)
}

// Controller bootstrap: logging, metrics, relay bank forced off, socket
// slot construction.
func (s *Service) bootstrap() error {
	if s.cfg.TickInterval <= 0 {
		return ErrInvalidTickInterval
	}
	if s.cfg.HeartbeatInterval <= 0 {
		return ErrInvalidHeartbeatInterval
	}
	if s.cfg.ListenAddr == "" {
		return ErrMissingListenAddr
	}

	logging.ConfigureRuntime()
	s.logger = observability.InitLogger("relayctl")
	observability.RegisterMetrics()

	driver := s.cfg.Driver
	if driver == nil {
		driver = relay.LogDriver{Logger: s.logger}
	}
	s.bank = relay.NewBank(driver)

	router := httpd.NewRouter(s.bank, webui.Page(), s.logger)
	s.sck = sock.NewTCPSocket(s.cfg.ListenAddr)
	s.conn = NewConn(s.sck, router, s.logger)

	s.logger.Info().
		Str("listen_addr", s.cfg.ListenAddr).
		Str("ops_addr", s.cfg.OpsListenAddr).
		Int("channels", relay.ChannelCount).
		Msg("controller_ready")
	return nil
}

// Controller main loop: socket poll every tick, heartbeat logging, and
// optional ops server supervision.
func (s *Service) serve(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()
	heartbeat := time.NewTicker(s.cfg.HeartbeatInterval)
	defer heartbeat.Stop()
	defer func() { _ = s.sck.Close() }()

	opsErr := make(chan error, 1)
	if s.cfg.OpsListenAddr != "" {
		go func() {
			opsErr <- ops.Serve(ctx, s.cfg.OpsListenAddr, s.bank, s.logger)
		}()
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("controller_shutdown")
			return nil
		case err := <-opsErr:
			if err != nil {
				return err
			}
		case <-heartbeat.C:
			s.logHeartbeat()
		case <-ticker.C:
			s.conn.Poll()
		}
	}
}

func (s *Service) logHeartbeat() {
	on := 0
	for _, st := range s.bank.Snapshot() {
		if st == relay.On {
			on++
		}
	}
	s.logger.Info().
		Int("relays_on", on).
		Str("socket", s.sck.Status().String()).
		Msg("heartbeat")
}
