// Package ops serves the operational surface on its own listener:
// prometheus metrics, health, and a read-only relay view. It lives fully
// outside the single-socket device engine.
package ops

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/danmuck/relayctl/internal/httpd"
	"github.com/danmuck/relayctl/internal/observability"
	"github.com/danmuck/relayctl/internal/relay"
)

const version = "0.1.0"

const shutdownGrace = 5 * time.Second

// NewRouter builds the ops route table against a live relay bank.
func NewRouter(bank *relay.Bank, logger zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	started := time.Now()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		observability.RequestLogger(logger),
		observability.RequestMetricsMiddleware(),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"uptime":    time.Since(started).String(),
			"component": "relayctl-ops",
			"version":   version,
		})
	})

	r.GET("/relays", func(c *gin.Context) {
		c.Data(http.StatusOK, httpd.ContentTypeJSON, httpd.StatesJSON(bank.Snapshot()))
	})

	return r
}

// Serve runs the ops server until ctx cancels, then drains in-flight
// requests before returning.
func Serve(ctx context.Context, addr string, bank *relay.Bank, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: NewRouter(bank, logger),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", addr).Msg("ops_server_listening")
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
