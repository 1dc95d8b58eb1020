package kv

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/kv_store_mock.go -package=mock

// Store is the secure key-value contract used by the vault and the
// authentication manager. Values are opaque strings.
type Store interface {
	// Get returns the value of key or [ErrNotFound].
	Get(ctx context.Context, key string) (string, error)
	// Lookup is a non-critical read: storage failures are logged and
	// reported as absent.
	Lookup(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	// SetMany writes all entries atomically.
	SetMany(ctx context.Context, entries map[string]string) error
	// CompareAndSwap writes value only if the stored value equals expected.
	// An empty expected value means the key must be absent.
	CompareAndSwap(ctx context.Context, key, expected, value string) error
	Remove(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	// ClearAll removes every key of [Keys].
	ClearAll(ctx context.Context) error
	Close() error
}

// Backend is a raw persistence engine behind [SecureStore].
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Put writes all entries in one transaction.
	Put(ctx context.Context, entries map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	CompareAndSwap(ctx context.Context, key, expected, value string) (swapped bool, err error)
	Close() error
}
