package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nguyentantai21042004/transcribe-web/internal/config"
	"github.com/nguyentantai21042004/transcribe-web/internal/logger"
	"github.com/nguyentantai21042004/transcribe-web/internal/pipeline"
)

// Server is the web front end: an upload form in, a transcript out.
type Server struct {
	cfg      *config.Config
	pipeline pipeline.Pipeline
	logger   logger.Logger
	srv      *http.Server
}

// New creates the HTTP server and wires its routes.
func New(cfg *config.Config, p pipeline.Pipeline, log logger.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		pipeline: p,
		logger:   log,
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/transcribe", s.handleTranscribe).Methods(http.MethodPost)
	r.HandleFunc("/transcribe.docx", s.handleTranscribeDocx).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)

	s.srv = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "HTTP server listening on %s", s.cfg.Server.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
