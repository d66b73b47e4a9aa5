package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sbperudesarrollo/authbase/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Server runs the HTTP API and shuts down gracefully when its context is
// cancelled.
type Server struct {
	address string
	handler *Handler
	logger  logging.Logger
}

func NewServer(address string, logger logging.Logger, handler *Handler) *Server {
	return &Server{
		address: address,
		handler: handler,
		logger:  logger.With("module", "http_server"),
	}
}

func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	s.handler.Register(mux)

	srv := &http.Server{
		Addr:              s.address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
