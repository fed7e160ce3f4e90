package server

import (
	"context"
	"net/http"

	"github.com/bagdasarian/task-balancer/internal/config"
	"github.com/bagdasarian/task-balancer/internal/handler"
	"github.com/bagdasarian/task-balancer/internal/logging"
)

type Server struct {
	server *http.Server
	logger *logging.Logger
}

func NewServer(h *handler.Handler, cfg config.HTTPConfig, logger *logging.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      NewRouter(h, logger),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("server starting", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
