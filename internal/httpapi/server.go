package httpapi

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ptaonline/tabletop/internal/config"
)

// Server wraps the HTTP listener so it fits the lifecycle Service contract.
type Server struct {
	cfg    config.ServerConfig
	logger *zap.Logger
	srv    *http.Server
}

// NewServer creates the HTTP server for the given handler.
//
// Precondition: logger and handler must be non-nil.
func NewServer(cfg config.ServerConfig, logger *zap.Logger, handler http.Handler) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		srv: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Start listens and serves until Stop is called.
//
// Postcondition: Returns nil on graceful shutdown, the listener error
// otherwise.
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr()))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests within the configured shutdown timeout.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("http server shutdown", zap.Error(err))
	}
}
