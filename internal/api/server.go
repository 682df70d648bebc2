package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/spritzen-labs/simply-staking/internal/config"
)

type Server struct {
	httpServer *http.Server
	handler    *Handler
}

func New(cfg *config.ServerConfig, service Service) *Server {
	h := NewHandler(service, cfg.CallerHeader)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address(),
			Handler:      h.Routes(),
			WriteTimeout: cfg.WriteTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		handler: h,
	}
}

// Start blocks until the server is shut down.
func (s *Server) Start() error {
	log.Info().Msgf("Starting API server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
