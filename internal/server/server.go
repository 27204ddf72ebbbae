// Package server exposes analysis, claim checks and emotion adjustment over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ppiankov/textprobe/internal/corpus"
	"github.com/ppiankov/textprobe/internal/metrics"
	"github.com/ppiankov/textprobe/internal/model"
	"go.uber.org/zap"
)

// TextAnalyzer analyzes literal text
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, text, source string, threshold float64) (*model.Report, error)
}

// ClaimChecker checks a claim against reference sources
type ClaimChecker interface {
	Check(ctx context.Context, claim string) (*model.ClaimReport, error)
}

// Deps are the components the handlers call into
type Deps struct {
	Analyzer         TextAnalyzer
	Checker          ClaimChecker
	Corpus           *corpus.Corpus
	DefaultThreshold float64
	Metrics          *metrics.Metrics
	Logger           *zap.Logger
}

// Server wraps the HTTP listener
type Server struct {
	srv    *http.Server
	router http.Handler
	logger *zap.Logger
}

// NewServer creates a server listening on addr
func NewServer(addr string, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	router := NewRouter(deps)

	return &Server{
		router: router,
		logger: deps.Logger,
		srv: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start blocks serving requests until Stop is called
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Stop drains in-flight requests within timeout
func (s *Server) Stop(ctx context.Context, timeout time.Duration) error {
	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

// Handler returns the router
func (s *Server) Handler() http.Handler {
	return s.router
}
