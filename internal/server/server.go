// Package server exposes the allocation pipeline over HTTP: a workplan
// endpoint that accepts snapshot documents, a ratebook listing, health, and
// Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mepworks/workplan-generator/internal/collector"
	"github.com/mepworks/workplan-generator/internal/engines/allocator"
	"github.com/mepworks/workplan-generator/internal/export"
	"github.com/mepworks/workplan-generator/internal/logging"
	"github.com/mepworks/workplan-generator/pkg/config"
)

// Server wires the assembler behind an HTTP API.
type Server struct {
	assembler *allocator.Assembler
	book      collector.Ratebook
	metrics   *metrics
}

// NewServer creates a server over the given assembler. A nil book falls back
// to the default ratebook for the listing endpoint.
func NewServer(assembler *allocator.Assembler, book collector.Ratebook) (*Server, error) {
	if assembler == nil {
		return nil, errors.New("assembler cannot be nil")
	}
	if book == nil {
		book = collector.DefaultRatebook()
	}
	return &Server{
		assembler: assembler,
		book:      book,
		metrics:   newMetrics(),
	}, nil
}

// Handler returns the server's route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/workplan", s.handleWorkplan)
	mux.HandleFunc("GET /v1/ratebook", s.handleRatebook)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	return mux
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	logger := logging.FromContext(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// handleWorkplan runs one allocation. The request body is a snapshot
// document; an empty body runs the built-in defaults. Absent fields inherit
// defaults the same way file loading does. ?format=csv returns the flat row
// table instead of the JSON result.
func (s *Server) handleWorkplan(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	start := time.Now()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		s.metrics.allocationRuns.WithLabelValues("error").Inc()
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("reading request body: %w", err))
		return
	}

	doc := config.DefaultDocument()
	if len(body) > 0 {
		doc, err = config.ParseDocument(body)
		if err != nil {
			s.metrics.allocationRuns.WithLabelValues("error").Inc()
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	snap, err := config.Compile(doc)
	if err != nil {
		s.metrics.allocationRuns.WithLabelValues("error").Inc()
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	plan, breakdown, err := s.assembler.Assemble(r.Context(), snap)
	if err != nil {
		s.metrics.allocationRuns.WithLabelValues("error").Inc()
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.metrics.allocationRuns.WithLabelValues("success").Inc()
	s.metrics.allocationDuration.Observe(time.Since(start).Seconds())

	switch r.URL.Query().Get("format") {
	case "csv":
		s.metrics.exports.WithLabelValues("csv").Inc()
		w.Header().Set("Content-Type", "text/csv")
		if err := export.WriteCSV(w, plan); err != nil {
			logger.Error(err, "Failed to write CSV response")
		}
	case "", "json":
		s.metrics.exports.WithLabelValues("json").Inc()
		w.Header().Set("Content-Type", "application/json")
		if err := export.WriteJSON(w, plan, breakdown); err != nil {
			logger.Error(err, "Failed to write JSON response")
		}
	default:
		s.writeError(w, http.StatusBadRequest,
			fmt.Errorf("unsupported format %q", r.URL.Query().Get("format")))
	}
}

// handleRatebook lists the $/SF ratebook. Space types without a book rate
// are reported with a null rate and overrideRequired set.
func (s *Server) handleRatebook(w http.ResponseWriter, _ *http.Request) {
	type entry struct {
		SpaceType        string   `json:"spaceType"`
		Rate             *float64 `json:"rate"`
		OverrideRequired bool     `json:"overrideRequired"`
	}
	entries := make([]entry, 0, len(s.book))
	for _, t := range s.book.SpaceTypes() {
		r := s.book[t]
		entries = append(entries, entry{SpaceType: t, Rate: r, OverrideRequired: r == nil})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		logging.Log.Error(err, "Failed to write ratebook response")
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
