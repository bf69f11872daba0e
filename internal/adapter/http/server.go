package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/impactviz-service/internal/domain"
	"github.com/couchcryptid/impactviz-service/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Simulator computes impact reports.
type Simulator interface {
	Simulate(req domain.ImpactRequest) (domain.ImpactReport, error)
}

// EventPublisher forwards completed simulations downstream.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.SimulationEvent) error
}

// Deps are the collaborators behind the API routes. Publisher may be nil.
// PublishQueueSize bounds the events waiting for Publisher (default 256).
type Deps struct {
	Simulator        Simulator
	Catalog          domain.NEOCatalog
	Publisher        EventPublisher
	PublishQueueSize int
	Metrics          *observability.Metrics
	Logger           *slog.Logger
	AllowedOrigin    string
}

// Server exposes the impact API alongside health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	deps       Deps
	queue      *publishQueue
	logger     *slog.Logger
	ready      atomic.Bool
}

// NewServer creates an HTTP server with the API routes plus /healthz, /readyz, and /metrics.
func NewServer(addr string, deps Deps) *Server {
	router := gin.New()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		deps:   deps,
		logger: deps.Logger,
	}
	if deps.Publisher != nil {
		s.queue = newPublishQueue(deps.Publisher, deps.PublishQueueSize, deps.Metrics, deps.Logger)
	}

	router.Use(
		gin.Recovery(),
		otelgin.Middleware(observability.ServiceName),
		requestLogger(deps.Logger),
		cors(deps.AllowedOrigin),
	)

	router.GET("/", s.handleHome)
	router.GET("/asteroids", s.handleAsteroids)
	router.POST("/simulate-impact", s.handleSimulate)

	router.GET("/healthz", gin.WrapF(sharedobs.LivenessHandler()))
	router.GET("/readyz", gin.WrapF(sharedobs.ReadinessHandler(s)))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return s
}

// Start marks the server ready and begins listening. Returns
// http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	s.MarkReady()
	return s.httpServer.ListenAndServe()
}

// Shutdown stops reporting ready, drains connections, then flushes queued
// simulation events, all within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.ready.Store(false)
	err := s.httpServer.Shutdown(ctx)
	if s.queue != nil {
		if qerr := s.queue.close(ctx); qerr != nil && err == nil {
			err = fmt.Errorf("drain publish queue: %w", qerr)
		}
	}
	return err
}

// MarkReady flips readiness on without starting a listener.
func (s *Server) MarkReady() {
	s.ready.Store(true)
}

// CheckReadiness reports whether the server is accepting traffic.
func (s *Server) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("server is not accepting traffic")
	}
	return nil
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
