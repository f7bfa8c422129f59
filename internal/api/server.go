package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/snapreads/studypack/internal/config"
	"github.com/snapreads/studypack/internal/history"
	"github.com/snapreads/studypack/internal/llm"
	"github.com/snapreads/studypack/internal/pipeline"
)

// Server is the HTTP API server for studypack.
type Server struct {
	router   chi.Router
	pipeline *pipeline.Pipeline
	history  *history.Store
	llmStats *llm.Stats
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server. llmStats may be nil
// when no model client is configured.
func NewServer(p *pipeline.Pipeline, hist *history.Store, llmStats *llm.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		pipeline: p,
		history:  hist,
		llmStats: llmStats,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(s.cfg.APIKey))

		r.Post("/api/pack", s.handleCreatePack)
		r.Get("/api/history", s.handleListHistory)
		r.Get("/api/history/{packID}", s.handleGetHistory)
		r.Get("/api/history/{packID}/pdf", s.handleDownloadPDF)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
