// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package kv

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/onelock/internal/config"
	"github.com/MKhiriev/onelock/internal/logger"
	"github.com/MKhiriev/onelock/migrations"
)

// Storage driver names accepted by [OpenBackend].
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverBolt     = "bolt"
)

// OpenBackend connects the backend selected by cfg.Driver and runs the
// schema migrations for SQL drivers.
func OpenBackend(ctx context.Context, cfg config.Storage, log *logger.Logger) (Backend, error) {
	switch cfg.Driver {
	case DriverMemory:
		log.Warn().Str("func", "OpenBackend").Msg("using in-memory storage, nothing will be persisted")
		return NewMemoryBackend(), nil

	case DriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		if err = migrations.Migrate(db, string(DialectSQLite)); err != nil {
			db.Close()
			return nil, err
		}
		return NewSQLBackend(db, DialectSQLite, log), nil

	case DriverPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		if err = migrations.Migrate(db, string(DialectPostgres)); err != nil {
			db.Close()
			return nil, err
		}
		return NewSQLBackend(db, DialectPostgres, log), nil

	case DriverBolt:
		if err := ensureParentDir(cfg.DSN); err != nil {
			return nil, err
		}
		return OpenBoltBackend(cfg.DSN)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
}

// NewConnectSQLite opens the SQLite file at dsn, creating its directory.
func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*sql.DB, error) {
	if err := ensureParentDir(dsn); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database directory")
		return nil, err
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening database")
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer keeps SQLite from returning SQLITE_BUSY under our own load
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return conn, nil
}

// NewConnectPostgres opens a pgx-backed *sql.DB for dsn.
func NewConnectPostgres(ctx context.Context, dsn string, log *logger.Logger) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	conn.SetMaxOpenConns(4)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return conn, nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
