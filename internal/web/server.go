package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/amishk599/jobscrapper/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Searcher runs a keyword search across all sources.
type Searcher interface {
	Search(ctx context.Context, keyword string) ([]model.Job, error)
}

// Server renders the search form and result pages.
type Server struct {
	searcher Searcher
	sources  []string
	views    *template.Template
	logger   *slog.Logger
}

// NewServer parses the embedded templates and returns a server backed by searcher.
// sources is shown on the landing page.
func NewServer(searcher Searcher, sources []string, logger *slog.Logger) (*Server, error) {
	views, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{
		searcher: searcher,
		sources:  sources,
		views:    views,
		logger:   logger,
	}, nil
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/search", s.handleSearch)
	r.Get("/export", s.handleExport)
	return r
}

// requestLogger logs one line per request via slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
