// Package workers runs background jobs alongside the API server and stops
// them together on shutdown.
package workers

import "context"

// Worker is a background job. Start must not block; Stop blocks until the
// job has exited.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
