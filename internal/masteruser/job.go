package masteruser

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/onelock/internal/logger"
)

const defaultSyncInterval = 5 * time.Minute

// Syncer is the part of Service the job drives.
type Syncer interface {
	// ReadyToPush applies the auto-lock timeout and reports whether the
	// vault is unlocked.
	ReadyToPush(ctx context.Context) bool
	SyncToRemote(ctx context.Context) error
}

// SyncJob pushes the vault on a ticker while the API server runs.
type SyncJob struct {
	syncer Syncer
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates an idle job.
func NewSyncJob(syncer Syncer, log *logger.Logger) *SyncJob {
	return &SyncJob{syncer: syncer, logger: log}
}

// Start stops any running loop and starts a new one that pushes every
// interval (5 minutes if interval is not positive). Ticks that find the
// vault locked are skipped. The loop exits when ctx is cancelled or Stop is
// called. Push failures are logged and retried on the next tick.
func (j *SyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if !j.syncer.ReadyToPush(jobCtx) {
					j.logger.Debug().Str("func", "*SyncJob.Start").Msg("vault locked, push skipped")
					continue
				}
				if err := j.syncer.SyncToRemote(jobCtx); err != nil {
					j.logger.Warn().Err(err).Str("func", "*SyncJob.Start").Msg("scheduled push failed")
				}
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit. It is a no-op when the
// job is idle.
func (j *SyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
