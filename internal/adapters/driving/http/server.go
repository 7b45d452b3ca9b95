// Package http exposes the detection service as a JSON HTTP API.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/profanity/internal/core/ports/driving"
	"github.com/custodia-labs/profanity/internal/logger"
)

// ErrMissingDetectionService is returned when the detection service is not provided.
var ErrMissingDetectionService = errors.New("http: detection service is required")

const shutdownTimeout = 10 * time.Second

// Server is the HTTP server for the detection API.
type Server struct {
	detection driving.DetectionService
	addr      string
	handler   http.Handler
}

// NewServer creates a new HTTP server listening on addr.
func NewServer(detection driving.DetectionService, addr string) (*Server, error) {
	if detection == nil {
		return nil, ErrMissingDetectionService
	}

	s := &Server{
		detection: detection,
		addr:      addr,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /{$}", s.handleDetect)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.handler = requestIDMiddleware(corsMiddleware(loggingMiddleware(mux)))

	return s, nil
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Start listens on the configured address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server listening", zap.String("addr", ln.Addr().String()))
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("Shutting down server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
