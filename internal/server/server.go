// Package server exposes the extraction pipeline over a JSON HTTP API.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jklim/schoolcal/internal/event"
	"github.com/jklim/schoolcal/internal/extract"
	"github.com/jklim/schoolcal/internal/llm"
)

// ExtractionUsecase is what the handlers need from the pipeline.
type ExtractionUsecase interface {
	Extract(ctx context.Context, req llm.ExtractRequest) (extract.Result, error)
	ExtractFromPDF(ctx context.Context, pdf []byte, customPrompt string, fields *event.EnabledFields) (extract.Result, error)
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	logger     *slog.Logger

	svc ExtractionUsecase

	maxUploadBytes int64

	authEnabled  bool
	authUsername string
	authPassword string
}

// Option configures a Server.
type Option func(*Server)

// WithBasicAuth enables HTTP Basic Auth on the extraction endpoints.
// The health endpoint stays open.
func WithBasicAuth(username, password string) Option {
	return func(s *Server) {
		if username != "" && password != "" {
			s.authEnabled = true
			s.authUsername = username
			s.authPassword = password
		}
	}
}

// WithMaxUploadBytes caps the size of a PDF upload request body.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates the API server with the given pipeline service.
func NewServer(addr string, svc ExtractionUsecase, opts ...Option) *Server {
	mux := http.NewServeMux()
	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  2 * time.Minute, // uploads of multi-page scans are slow on mobile data
			WriteTimeout: 2 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
		mux:            mux,
		logger:         slog.Default(),
		svc:            svc,
		maxUploadBytes: 32 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	return s
}

func (s *Server) wrapAuth(h http.Handler) http.Handler {
	if !s.authEnabled {
		return h
	}
	return basicAuthMiddleware(s.authUsername, s.authPassword)(h)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	s.mux.Handle("POST /api/v1/extract", s.wrapAuth(http.HandlerFunc(s.handleExtract)))
	s.mux.Handle("POST /api/v1/extract/upload", s.wrapAuth(http.HandlerFunc(s.handleUpload)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
