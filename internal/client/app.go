package client

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/onelock/internal/auth"
	"github.com/MKhiriev/onelock/internal/config"
	"github.com/MKhiriev/onelock/internal/crypto"
	"github.com/MKhiriev/onelock/internal/kv"
	"github.com/MKhiriev/onelock/internal/logger"
	"github.com/MKhiriev/onelock/internal/masteruser"
	"github.com/MKhiriev/onelock/internal/utils"
	"github.com/MKhiriev/onelock/internal/vault"
	"github.com/MKhiriev/onelock/models"
)

// EnvMasterPassword, when set, is used instead of prompting for the master
// password. Meant for scripts; it is visible to other processes of the
// same user.
const EnvMasterPassword = "ONELOCK_MASTER_PASSWORD"

// App wires storage, crypto and the vault services behind the CLI
// commands.
type App struct {
	cfg   *config.StructuredConfig
	build models.BuildInfo

	backend kv.Backend
	store   *kv.SecureStore
	hasher  crypto.PasswordHasher
	vault   *vault.Store
	auth    *auth.Manager
	master  *masteruser.Service

	prompt Prompter
	out    io.Writer
	getenv func(string) string

	logger *logger.Logger
}

// Option customises an App.
type Option func(*App)

// WithBackend replaces the backend selected by the storage config.
func WithBackend(b kv.Backend) Option {
	return func(a *App) { a.backend = b }
}

// WithPrompter replaces the terminal prompter.
func WithPrompter(p Prompter) Option {
	return func(a *App) { a.prompt = p }
}

// WithOutput redirects command output.
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithGetenv replaces os.Getenv for the master password override.
func WithGetenv(fn func(string) string) Option {
	return func(a *App) { a.getenv = fn }
}

// NewApp opens the configured backend and builds the services. The vault
// starts locked.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, build models.BuildInfo, log *logger.Logger, opts ...Option) (*App, error) {
	a := &App{
		cfg:    cfg,
		build:  build,
		out:    os.Stdout,
		getenv: os.Getenv,
		logger: log,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.prompt == nil {
		a.prompt = NewTerminalPrompter(os.Stdin, os.Stderr)
	}

	alg, err := crypto.ParseAlgorithm(cfg.App.Cipher)
	if err != nil {
		return nil, err
	}

	if a.backend == nil {
		a.backend, err = kv.OpenBackend(ctx, cfg.Storage, log)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
	}

	params := kdfParams(cfg.App)
	a.store = kv.NewSecureStore(a.backend, log)
	a.hasher = crypto.NewPasswordHasher(params, cfg.App.Pepper)
	a.vault = vault.NewStore(a.store, log)
	a.auth = auth.NewManager(a.store, a.vault, crypto.NewKeyChainService(params), a.hasher, log,
		auth.WithAlgorithm(alg),
		auth.WithStarterTemplates(cfg.App.SeedTemplates),
	)

	mcfg := masteruser.Config{Username: cfg.MasterUser.Username, PasswordHash: cfg.MasterUser.PasswordHash}
	if mcfg.Enabled() {
		a.master = masteruser.NewService(mcfg, a.auth, a.vault, a.store, a.hasher, log, syncOptions(cfg.Sync)...)
	}

	log.Debug().Str("func", "NewApp").Str("driver", cfg.Storage.Driver).Bool("master_user", a.master != nil).Msg("application created")
	return a, nil
}

// Close locks the vault and closes the storage backend.
func (a *App) Close() error {
	a.auth.Lock()
	return a.store.Close()
}

func kdfParams(cfg config.App) crypto.KDFParams {
	p := crypto.DefaultKDFParams()
	if cfg.KDFTime > 0 {
		p.Time = cfg.KDFTime
	}
	if cfg.KDFMemoryKiB > 0 {
		p.MemoryKiB = cfg.KDFMemoryKiB
	}
	if cfg.KDFThreads > 0 {
		p.Threads = cfg.KDFThreads
	}
	return p
}

func syncOptions(cfg config.Sync) []masteruser.Option {
	var opts []masteruser.Option

	switch {
	case cfg.RemoteURL != "":
		opts = append(opts, masteruser.WithSource(
			masteruser.NewHTTPSource(utils.NewHTTPClient(cfg.RequestTimeout), cfg.RemoteURL, cfg.SigningKey),
		))
	case cfg.DatasetFile != "":
		opts = append(opts, masteruser.WithSource(masteruser.FileSource{Path: cfg.DatasetFile}))
	}

	if cfg.PushURL != "" {
		opts = append(opts, masteruser.WithPusher(
			masteruser.NewHTTPPusher(utils.NewHTTPClient(cfg.RequestTimeout), cfg.PushURL, cfg.SigningKey),
		))
	}
	return opts
}
