// Package api serves the analytic tool operations over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Muditha98/LaptopInsights/internal/tools"
	"github.com/Muditha98/LaptopInsights/llm"
	"github.com/Muditha98/LaptopInsights/logger"
	"github.com/Muditha98/LaptopInsights/services/store"
	"github.com/Muditha98/LaptopInsights/services/worker"
)

// BatchRunner triggers scrapes on demand
type BatchRunner interface {
	RunBatch() []worker.BatchError
	RunProduct(productID string) error
}

// Server handles HTTP API requests
type Server struct {
	tools      *tools.Tools
	store      store.Store
	runner     BatchRunner
	llmClient  *llm.Client
	llmEnabled bool
	log        *logger.Logger

	httpServer *http.Server
}

// NewServer creates an API server over the tool surface. The runner
// and LLM client are optional.
func NewServer(t *tools.Tools, st store.Store, runner BatchRunner, llmClient *llm.Client, llmEnabled bool) *Server {
	return &Server{
		tools:      t,
		store:      st,
		runner:     runner,
		llmClient:  llmClient,
		llmEnabled: llmEnabled,
		log:        logger.ForAPI(),
	}
}

// Routes builds the request multiplexer. Split out from Start so tests
// can exercise the routing without binding a socket.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/prices", s.handlePrices)
	mux.HandleFunc("GET /api/v1/products/{id}", s.handleDetails)
	mux.HandleFunc("GET /api/v1/products/{id}/trend", s.handleTrend)
	mux.HandleFunc("GET /api/v1/products/{id}/history", s.handleHistory)
	mux.HandleFunc("GET /api/v1/compare", s.handleCompare)
	mux.HandleFunc("GET /api/v1/availability", s.handleAvailability)
	mux.HandleFunc("GET /api/v1/deals", s.handleDeals)
	mux.HandleFunc("GET /api/v1/insights", s.handleInsights)
	mux.HandleFunc("POST /api/v1/scrape", s.handleScrape)

	mux.HandleFunc("GET /health", s.handleHealth)

	return s.corsMiddleware(s.loggingMiddleware(mux))
}

// Start serves the API on the given port until the context is
// cancelled
func (s *Server) Start(ctx context.Context, port int) error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("API server starting")
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("Request handled")
	})
}
