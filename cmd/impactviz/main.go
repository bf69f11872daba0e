package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/impactviz-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/impactviz-service/internal/adapter/kafka"
	"github.com/couchcryptid/impactviz-service/internal/adapter/neows"
	"github.com/couchcryptid/impactviz-service/internal/config"
	"github.com/couchcryptid/impactviz-service/internal/domain"
	"github.com/couchcryptid/impactviz-service/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.OTelEndpoint, logger)
	if err != nil {
		logger.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer shutdownTracer(context.Background())

	// NEO catalog proxy, optionally cached (NEOWS_CACHE_TTL > 0).
	var catalog domain.NEOCatalog = neows.NewClient(cfg.NASAAPIKey, cfg.NeoWsBaseURL, cfg.NeoWsTimeout, metrics, logger,
		neows.WithMaxRetries(cfg.NeoWsMaxRetries),
		neows.WithRateLimit(cfg.NeoWsRateLimit),
	)
	if cfg.NeoWsCacheTTL > 0 {
		catalog = neows.NewCachedCatalog(catalog, cfg.NeoWsCacheSize, cfg.NeoWsCacheTTL, clockwork.NewRealClock(), metrics)
		logger.Info("neo catalog cache enabled", "cache_size", cfg.NeoWsCacheSize, "ttl", cfg.NeoWsCacheTTL)
	}

	// Simulation event publishing (feature-flagged via KAFKA_BROKERS).
	var publisher httpadapter.EventPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("simulation event publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("simulation event publishing disabled")
	}

	calculator := domain.NewCalculator(domain.DefaultConstants(), domain.LandOnly{})

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Deps{
		Simulator:     calculator,
		Catalog:       catalog,
		Publisher:     publisher,
		Metrics:       metrics,
		Logger:        logger,
		AllowedOrigin: cfg.CORSAllowedOrigin,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
