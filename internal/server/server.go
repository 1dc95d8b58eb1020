package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/onelock/internal/config"
	"github.com/MKhiriev/onelock/internal/logger"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	onListen   func(net.Addr)
	logger     *logger.Logger
}

// Option customises the server.
type Option func(*server)

// WithListenHook is called with the bound address once the listener is
// open, e.g. to print it when the configured port is 0.
func WithListenHook(fn func(net.Addr)) Option {
	return func(s *server) { s.onListen = fn }
}

// NewServer validates cfg and prepares an HTTP server for handler.
func NewServer(handler http.Handler, cfg config.Server, logger *logger.Logger, opts ...Option) (Server, error) {
	logger.Info().Msg("creating new server...")
	if cfg.HTTPAddress == "" || handler == nil {
		return nil, errNotConfigured
	}

	s := &server{
		httpServer: newHTTPServer(handler, cfg, logger),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run listens and serves until ctx is done, then shuts down gracefully.
func (s *server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpServer.server.Addr, err)
	}
	if s.onListen != nil {
		s.onListen(ln.Addr())
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	served := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", ln.Addr().String()).Msg("Launching HTTP server")
		served <- s.httpServer.serve(ln)
	}()

	select {
	case err = <-served:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err = <-served; err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.httpServer.shutdown(ctx)
}
