// Package api serves the person repository and the pricing benchmark over
// a JSON REST interface rooted at /api/v1, with Prometheus metrics on
// /metrics.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter builds the HTTP handler for s. Metrics are served from gatherer.
func NewRouter(s *Server, gatherer prometheus.Gatherer) http.Handler {
	metrics := s.metrics

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		// Persons
		r.Get("/persons", metrics.InstrumentHandler("GET", "/api/v1/persons", s.handleListPersons))
		r.Post("/persons", metrics.InstrumentHandler("POST", "/api/v1/persons", s.handleCreatePerson))
		r.Delete("/persons", metrics.InstrumentHandler("DELETE", "/api/v1/persons", s.handleClearPersons))
		r.Get("/persons/count", metrics.InstrumentHandler("GET", "/api/v1/persons/count", s.handleCountPersons))
		r.Get("/persons/{id}", metrics.InstrumentHandler("GET", "/api/v1/persons/{id}", s.handleGetPerson))
		r.Put("/persons/{id}", metrics.InstrumentHandler("PUT", "/api/v1/persons/{id}", s.handleUpdatePerson))
		r.Delete("/persons/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/persons/{id}", s.handleDeletePerson))

		// Diagnostics
		r.Get("/stats", metrics.InstrumentHandler("GET", "/api/v1/stats", s.handleStats))
		r.Get("/benchmark", metrics.InstrumentHandler("GET", "/api/v1/benchmark", s.handleBenchmark))
	})

	return r
}

// StartServer serves store on config.Bind:config.Port until ctx is cancelled,
// then drains in-flight requests
func StartServer(ctx context.Context, store IPersonStore, config ServerConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := NewMetrics(registry)

	server := NewServer(store, config, metrics, logger)

	addr := net.JoinHostPort(config.Bind, fmt.Sprintf("%d", config.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(server, registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go server.startMetricsUpdater(ctx)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(listener)
	}()

	logger.Info("REST API server started",
		zap.String("addr", listener.Addr().String()),
		zap.String("metrics", "http://"+listener.Addr().String()+"/metrics"))

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	logger.Info("shutting down REST API server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
