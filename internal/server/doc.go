// Package server runs the local HTTP API until the context is cancelled or
// a termination signal arrives, then shuts it down gracefully.
package server
