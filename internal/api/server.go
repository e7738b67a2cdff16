package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wesleyflorence/bookchat/internal/config"
	"github.com/wesleyflorence/bookchat/internal/pipeline"
)

// Server is the HTTP API server for bookchat.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
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
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.BookchatAPIKey, s.log))

		r.Post("/api/books", s.handleUpload)
		r.Get("/api/books/{jobID}/status", s.handleStatus)
		r.Get("/api/books/{jobID}/chapters", s.handleListChapters)
		r.Get("/api/books/{jobID}/chapters/{key}", s.handleGetChapter)
		r.Post("/api/books/{jobID}/chapters/{key}/question", s.handleQuestion)
		r.Get("/api/books/{jobID}/review", s.handleReview)

		r.Get("/api/library", s.handleLibrary)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
