package server

import "context"

// Server defines the lifecycle of the API server.
type Server interface {
	// Run serves until ctx is done or SIGINT/SIGTERM/SIGQUIT arrives and
	// returns after the graceful shutdown completed.
	Run(ctx context.Context) error

	// Shutdown stops accepting connections and waits for in-flight
	// requests until ctx expires.
	Shutdown(ctx context.Context) error
}
