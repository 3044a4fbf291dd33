// Package server exposes the HTTP inspector: health, prometheus metrics, the
// PDU catalogue and recently decoded PDUs.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danmuck/disctl/internal/inspect"
	"github.com/danmuck/disctl/internal/observability"
	"github.com/danmuck/disctl/internal/protocol/pdu"
	"github.com/danmuck/disctl/internal/protocol/wire"
	"github.com/danmuck/disctl/internal/receiver"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const Version = "0.1.0"

type Config struct {
	Addr            string
	CorsOrigins     []string
	ShutdownTimeout time.Duration
	Limits          wire.Limits
}

type Inspector struct {
	cfg      Config
	router   *gin.Engine
	recent   *inspect.Recent
	registry *pdu.Registry
	decoder  *pdu.Decoder
	stats    func() receiver.Stats
	started  time.Time
}

// New builds the router and registers every route. A nil registry selects
// pdu.DefaultRegistry; stats may be nil when no receiver is running.
func New(cfg Config, recent *inspect.Recent, reg *pdu.Registry, stats func() receiver.Stats) *Inspector {
	observability.RegisterMetrics()
	if reg == nil {
		reg = pdu.DefaultRegistry()
	}
	if recent == nil {
		recent = inspect.NewRecent(1)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Inspector{
		cfg:      cfg,
		router:   r,
		recent:   recent,
		registry: reg,
		decoder:  pdu.NewDecoder(reg, cfg.Limits),
		stats:    stats,
		started:  time.Now(),
	}
	s.registerRoutes()
	return s
}

func (s *Inspector) Router() *gin.Engine {
	return s.router
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func (s *Inspector) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Msg("inspector listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("inspector: serve %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("inspector: shutdown: %w", err)
	}
	log.Info().Msg("inspector stopped")
	return nil
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
