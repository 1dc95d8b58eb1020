package client

import (
	"context"
	"crypto/rand"
	"fmt"
	"net"
	"time"

	handler "github.com/MKhiriev/onelock/internal/handler/http"
	"github.com/MKhiriev/onelock/internal/masteruser"
	"github.com/MKhiriev/onelock/internal/server"
	"github.com/MKhiriev/onelock/internal/workers"
)

func (a *App) cmdPull(ctx context.Context, args []string) error {
	fs := a.flagSet("pull")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}
	if a.master == nil {
		return ErrSyncDisabled
	}

	if err := a.unlock(ctx); err != nil {
		return err
	}
	n, err := a.master.SyncFromRemote(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Vault replaced with %d records from the remote dataset.\n", n)
	return nil
}

func (a *App) cmdPush(ctx context.Context, args []string) error {
	fs := a.flagSet("push")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}
	if a.master == nil {
		return ErrSyncDisabled
	}

	if err := a.unlock(ctx); err != nil {
		return err
	}
	if err := a.master.SyncToRemote(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Vault pushed.")
	return nil
}

// sessionTTL bounds the lifetime of an API session token.
const sessionTTL = 12 * time.Hour

// cmdServe runs the local HTTP API until ctx is cancelled or the process
// gets a termination signal. The vault starts locked; clients unlock it
// through the API and send the returned session token as a bearer token.
func (a *App) cmdServe(ctx context.Context, args []string) error {
	fs := a.flagSet("serve")
	addr := fs.String("addr", a.cfg.Server.HTTPAddress, "listen address, host:port")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	sessionKey := make([]byte, 32)
	if _, err := rand.Read(sessionKey); err != nil {
		return fmt.Errorf("generate session key: %w", err)
	}

	h := handler.NewHandler(&handler.Services{
		Auth:       a.auth,
		Vault:      a.vault,
		MasterUser: a.master,
		Build:      a.build,
	}, a.cfg.Sync.SigningKey, a.logger, handler.WithSessionTokens(sessionKey, sessionTTL))

	srvCfg := a.cfg.Server
	srvCfg.HTTPAddress = *addr
	srv, err := server.NewServer(h.Init(), srvCfg, a.logger, server.WithListenHook(func(addr net.Addr) {
		fmt.Fprintf(a.out, "Listening on http://%s\n", addr)
	}))
	if err != nil {
		return err
	}

	jobs := workers.NewWorkers()
	if a.master != nil && a.cfg.Sync.Interval > 0 {
		jobs.Add(&syncWorker{job: masteruser.NewSyncJob(a.master, a.logger), interval: a.cfg.Sync.Interval})
	}
	jobs.Start(ctx)
	defer jobs.Stop()

	return srv.Run(ctx)
}

// syncWorker adapts the periodic push to the workers lifecycle.
type syncWorker struct {
	job      *masteruser.SyncJob
	interval time.Duration
}

func (w *syncWorker) Start(ctx context.Context) {
	w.job.Start(ctx, w.interval)
}

func (w *syncWorker) Stop() {
	w.job.Stop()
}
