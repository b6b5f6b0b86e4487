// Package httpserver exposes the analysis service over HTTP.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"github.com/tsawler/litsense"
	"github.com/tsawler/litsense/internal/config"
	"github.com/tsawler/litsense/internal/domain"
)

type appService interface {
	Analyze(ctx context.Context, text string, textType litsense.TextType) (*domain.Record, error)
	Compare(ctx context.Context, texts []string, labels []string) ([]litsense.Comparison, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Record, error)
	Recent(ctx context.Context, limit int) ([]*domain.Record, error)
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app          appService
	healthChecks []HealthCheck
	clock        clockwork.Clock
	startTime    time.Time
}

// ServerOpt customizes a Server.
type ServerOpt func(s *Server)

// WithHealthChecks sets the checks run by the readiness probe.
func WithHealthChecks(checks ...HealthCheck) ServerOpt {
	return func(s *Server) {
		s.healthChecks = append(s.healthChecks, checks...)
	}
}

// WithClock sets the clock used for uptime reporting.
func WithClock(clock clockwork.Clock) ServerOpt {
	return func(s *Server) {
		s.clock = clock
	}
}

func NewServer(cfg *config.Config, app appService, opts ...ServerOpt) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:   e,
		config: cfg,
		app:    app,
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(srv)
	}
	srv.startTime = srv.clock.Now()

	srv.registerRoutes()
	return srv
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
