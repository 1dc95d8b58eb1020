// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/onelock/internal/logger"
)

// Dialect selects placeholder format, goose dialect and error classifier.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

const (
	kvTable       = "secure_kv"
	colName       = "name"
	colValue      = "value"
	colUpdatedAt  = "updated_at"
	maxSQLRetries = 3
)

// SQLBackend stores values in the secure_kv table created by the goose
// migrations. Transient driver errors are retried with exponential backoff.
type SQLBackend struct {
	db         *sql.DB
	builder    sq.StatementBuilderType
	classifier ErrorClassifier
	backoff    func() retry.Backoff
	now        func() time.Time
	logger     *logger.Logger
}

// NewSQLBackend wraps an open, migrated database.
func NewSQLBackend(db *sql.DB, dialect Dialect, log *logger.Logger) *SQLBackend {
	b := &SQLBackend{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(maxSQLRetries, retry.NewExponential(50*time.Millisecond))
		},
		logger: log,
	}

	switch dialect {
	case DialectPostgres:
		b.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		b.classifier = NewPostgresErrorClassifier()
	default:
		b.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		b.classifier = NewSQLiteErrorClassifier()
	}

	return b
}

// Get reads one row by key.
func (b *SQLBackend) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := b.builder.
		Select(colValue).
		From(kvTable).
		Where(sq.Eq{colName: key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build select query: %w", err)
	}

	var value string
	err = b.withRetry(ctx, func(ctx context.Context) error {
		return b.db.QueryRowContext(ctx, query, args...).Scan(&value)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %s: %w", key, err)
	}

	return value, true, nil
}

// Put upserts all entries in one transaction, retrying transient errors.
func (b *SQLBackend) Put(ctx context.Context, entries map[string]string) error {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return b.withRetry(ctx, func(ctx context.Context) error {
		tx, err := b.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback()

		now := b.now()
		for _, k := range keys {
			query, args, err := b.builder.
				Insert(kvTable).
				Columns(colName, colValue, colUpdatedAt).
				Values(k, entries[k], now).
				Suffix("ON CONFLICT (" + colName + ") DO UPDATE SET " +
					colValue + " = excluded." + colValue + ", " +
					colUpdatedAt + " = excluded." + colUpdatedAt).
				ToSql()
			if err != nil {
				return fmt.Errorf("build upsert query: %w", err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert %s: %w", k, err)
			}
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}

// Delete removes the given keys in one statement.
func (b *SQLBackend) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := b.builder.
		Delete(kvTable).
		Where(sq.Eq{colName: keys}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	return b.withRetry(ctx, func(ctx context.Context) error {
		_, err := b.db.ExecContext(ctx, query, args...)
		return err
	})
}

// CompareAndSwap inserts when expected is empty and otherwise updates the
// row only while it still holds expected.
func (b *SQLBackend) CompareAndSwap(ctx context.Context, key, expected, value string) (bool, error) {
	var (
		query string
		args  []any
		err   error
	)
	if expected == "" {
		query, args, err = b.builder.
			Insert(kvTable).
			Columns(colName, colValue, colUpdatedAt).
			Values(key, value, b.now()).
			Suffix("ON CONFLICT (" + colName + ") DO NOTHING").
			ToSql()
	} else {
		query, args, err = b.builder.
			Update(kvTable).
			Set(colValue, value).
			Set(colUpdatedAt, b.now()).
			Where(sq.Eq{colName: key, colValue: expected}).
			ToSql()
	}
	if err != nil {
		return false, fmt.Errorf("build swap query: %w", err)
	}

	var affected int64
	err = b.withRetry(ctx, func(ctx context.Context) error {
		res, err := b.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("swap %s: %w", key, err)
	}

	return affected == 1, nil
}

// Close closes the underlying *sql.DB.
func (b *SQLBackend) Close() error {
	return b.db.Close()
}

func (b *SQLBackend) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	attempt := 0
	return retry.Do(ctx, b.backoff(), func(ctx context.Context) error {
		attempt++
		err := op(ctx)
		if err != nil && b.classifier.Classify(err) == Retryable {
			b.logger.Warn().Err(err).Str("func", "*SQLBackend.withRetry").Int("attempt", attempt).Msg("retrying transient database error")
			return retry.RetryableError(err)
		}
		return err
	})
}
