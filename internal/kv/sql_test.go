package kv

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/onelock/internal/logger"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSQLBackend(t *testing.T, dialect Dialect) (*SQLBackend, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	b := NewSQLBackend(db, dialect, logger.Nop())
	b.now = func() time.Time { return fixedNow }
	b.backoff = func() retry.Backoff {
		return retry.WithMaxRetries(2, retry.NewConstant(time.Millisecond))
	}
	return b, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestSQLBackend_Get_Postgres(t *testing.T) {
	b, mock := newTestSQLBackend(t, DialectPostgres)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM secure_kv WHERE name = $1")).
		WithArgs(KeyTheme).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("dark"))

	v, ok, err := b.Get(context.Background(), KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackend_Get_Absent(t *testing.T) {
	b, mock := newTestSQLBackend(t, DialectSQLite)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM secure_kv WHERE name = ?")).
		WithArgs(KeyTheme).
		WillReturnError(sql.ErrNoRows)

	_, ok, err := b.Get(context.Background(), KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLBackend_Get_RetriesTransientErrors(t *testing.T) {
	b, mock := newTestSQLBackend(t, DialectPostgres)

	mock.ExpectQuery("SELECT value FROM secure_kv").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectQuery("SELECT value FROM secure_kv").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("5"))

	v, ok, err := b.Get(context.Background(), KeyAutoLockMinutes)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "5", v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackend_Get_DoesNotRetryPermanentErrors(t *testing.T) {
	b, mock := newTestSQLBackend(t, DialectPostgres)

	mock.ExpectQuery("SELECT value FROM secure_kv").
		WillReturnError(pgError(pgerrcode.UndefinedTable))

	_, _, err := b.Get(context.Background(), KeyTheme)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackend_Put_Transaction(t *testing.T) {
	b, mock := newTestSQLBackend(t, DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO secure_kv (name,value,updated_at) VALUES ($1,$2,$3) ON CONFLICT (name) DO UPDATE")).
		WithArgs(KeyAutoLockMinutes, "5", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO secure_kv").
		WithArgs(KeyTheme, "light", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := b.Put(context.Background(), map[string]string{KeyTheme: "light", KeyAutoLockMinutes: "5"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackend_Put_RollsBackOnFailure(t *testing.T) {
	b, mock := newTestSQLBackend(t, DialectSQLite)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO secure_kv").
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := b.Put(context.Background(), map[string]string{KeyTheme: "light"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackend_Delete(t *testing.T) {
	b, mock := newTestSQLBackend(t, DialectPostgres)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM secure_kv WHERE name IN ($1,$2)")).
		WithArgs(KeyTheme, KeyUsername).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, b.Delete(context.Background(), KeyTheme, KeyUsername))
	require.NoError(t, b.Delete(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackend_CompareAndSwap(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		query    string
		args     []any
		affected int64
		want     bool
	}{
		{
			name:     "update matching value",
			expected: "old",
			query:    "UPDATE secure_kv SET value = $1, updated_at = $2 WHERE",
			args:     []any{"new", fixedNow, KeyVaultBlob, "old"},
			affected: 1,
			want:     true,
		},
		{
			name:     "value changed underneath",
			expected: "old",
			query:    "UPDATE secure_kv SET value = $1, updated_at = $2 WHERE",
			args:     []any{"new", fixedNow, KeyVaultBlob, "old"},
			affected: 0,
			want:     false,
		},
		{
			name:     "insert when absent",
			expected: "",
			query:    "INSERT INTO secure_kv (name,value,updated_at) VALUES ($1,$2,$3) ON CONFLICT (name) DO NOTHING",
			args:     []any{KeyVaultBlob, "new", fixedNow},
			affected: 1,
			want:     true,
		},
		{
			name:     "insert when present",
			expected: "",
			query:    "INSERT INTO secure_kv (name,value,updated_at) VALUES ($1,$2,$3) ON CONFLICT (name) DO NOTHING",
			args:     []any{KeyVaultBlob, "new", fixedNow},
			affected: 0,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, mock := newTestSQLBackend(t, DialectPostgres)

			args := make([]driver.Value, 0, len(tt.args))
			for _, a := range tt.args {
				args = append(args, a)
			}
			mock.ExpectExec(regexp.QuoteMeta(tt.query)).
				WithArgs(args...).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			swapped, err := b.CompareAndSwap(context.Background(), KeyVaultBlob, tt.expected, "new")
			require.NoError(t, err)
			assert.Equal(t, tt.want, swapped)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.ConnectionFailure)))
	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.DeadlockDetected)))
	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.CannotConnectNow)))
	assert.Equal(t, NonRetryable, c.Classify(pgError(pgerrcode.UniqueViolation)))
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
}
