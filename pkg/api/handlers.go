package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/adrianowead/wead/pkg/bench"
	"github.com/adrianowead/wead/pkg/person"
)

const (
	modeSequential = "sequential"
	modeParallel   = "parallel"
)

// Server holds the API server state
type Server struct {
	store   IPersonStore
	config  ServerConfig
	metrics *Metrics
	logger  *zap.Logger
}

// NewServer creates a new API server
func NewServer(store IPersonStore, config ServerConfig, metrics *Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:   store,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// observe records the outcome of a repository operation
func (s *Server) observe(operation string, start time.Time, err error) {
	s.metrics.RecordDBOperation(operation, err == nil, time.Since(start))
}

// sendStoreError maps err to a status and logs server-side failures
func (s *Server) sendStoreError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("repository operation failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	sendError(w, err.Error(), status)
}

func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// handleHealth reports that the server is up
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleListPersons returns every record, or those whose name contains ?name=
func (s *Server) handleListPersons(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var (
		people []*person.Person
		err    error
		op     = "list"
	)
	if r.URL.Query().Has("name") {
		op = "search"
		people, err = s.store.SearchByName(r.URL.Query().Get("name"))
	} else {
		people, err = s.store.ListAll()
	}
	s.observe(op, start, err)

	if err != nil {
		s.sendStoreError(w, r, err)
		return
	}
	sendSuccess(w, people)
}

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req PersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	start := time.Now()
	p := person.New(req.Name, req.Email, req.Phone)
	_, err := s.store.Create(p)
	s.observe("create", start, err)

	if err != nil {
		s.sendStoreError(w, r, err)
		return
	}
	sendSuccessStatus(w, http.StatusCreated, p)
}

// handleClearPersons removes every record
func (s *Server) handleClearPersons(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	err := s.store.ClearAll()
	s.observe("clear", start, err)

	if err != nil {
		s.sendStoreError(w, r, err)
		return
	}
	sendSuccess(w, map[string]string{"message": "All records removed"})
}

func (s *Server) handleCountPersons(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	count, err := s.store.Count()
	s.observe("count", start, err)

	if err != nil {
		s.sendStoreError(w, r, err)
		return
	}
	sendSuccess(w, CountResponse{Count: count})
}

func (s *Server) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	p, found, err := s.store.FindByID(id)
	s.observe("get", start, err)

	if err != nil {
		s.sendStoreError(w, r, err)
		return
	}
	if !found {
		sendError(w, fmt.Sprintf("record with id %d not found", id), http.StatusNotFound)
		return
	}
	sendSuccess(w, p)
}

// handleUpdatePerson replaces the fields present in the body
func (s *Server) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req PersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	start := time.Now()
	p, found, err := s.store.FindByID(id)
	if err != nil {
		s.observe("update", start, err)
		s.sendStoreError(w, r, err)
		return
	}
	if !found {
		s.observe("update", start, nil)
		sendError(w, fmt.Sprintf("record with id %d not found", id), http.StatusNotFound)
		return
	}

	if req.Name != "" {
		p.SetName(req.Name)
	}
	if req.Email != "" {
		if err := p.SetEmail(req.Email); err != nil {
			s.observe("update", start, err)
			s.sendStoreError(w, r, err)
			return
		}
	}
	if req.Phone != "" {
		p.SetPhone(req.Phone)
	}

	err = s.store.Update(p)
	s.observe("update", start, err)

	if err != nil {
		s.sendStoreError(w, r, err)
		return
	}
	sendSuccess(w, p)
}

func (s *Server) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	err = s.store.Delete(id)
	s.observe("delete", start, err)

	if err != nil {
		s.sendStoreError(w, r, err)
		return
	}
	sendSuccess(w, map[string]string{"message": "Record deleted successfully"})
}

// handleStats returns repository statistics and refreshes the gauges
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats()
	if err != nil {
		s.sendStoreError(w, r, err)
		return
	}
	s.metrics.UpdateDBStats(stats)
	sendSuccess(w, stats)
}

// handleBenchmark runs the pricing kernel.
// Query: iterations (default from config), mode (sequential|parallel), workers.
func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	iterations := s.config.BenchmarkIterations
	if raw := query.Get("iterations"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			sendError(w, fmt.Sprintf("invalid iterations %q", raw), http.StatusBadRequest)
			return
		}
		iterations = n
	}
	if s.config.BenchmarkMaxIterations > 0 && iterations > s.config.BenchmarkMaxIterations {
		sendError(w, fmt.Sprintf("iterations cannot exceed %d", s.config.BenchmarkMaxIterations), http.StatusBadRequest)
		return
	}

	workers := s.config.BenchmarkWorkers
	if raw := query.Get("workers"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			sendError(w, fmt.Sprintf("invalid workers %q", raw), http.StatusBadRequest)
			return
		}
		workers = n
	}

	mode := query.Get("mode")
	if mode == "" {
		mode = modeParallel
	}

	var (
		result bench.Result
		err    error
	)
	switch mode {
	case modeSequential:
		result = bench.RunSequential(iterations)
	case modeParallel:
		result, err = bench.RunParallel(r.Context(), iterations, workers)
	default:
		sendError(w, fmt.Sprintf("invalid mode %q, expected sequential or parallel", mode), http.StatusBadRequest)
		return
	}

	s.metrics.RecordBenchmark(mode, err == nil, result.Elapsed)
	if err != nil {
		sendError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	sendSuccess(w, result)
}

// startMetricsUpdater periodically refreshes the repository gauges until ctx ends
func (s *Server) startMetricsUpdater(ctx context.Context) {
	interval := s.config.StatsInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := s.store.Stats()
			if err != nil {
				s.logger.Warn("failed to refresh repository stats", zap.Error(err))
				continue
			}
			s.metrics.UpdateDBStats(stats)
		}
	}
}
