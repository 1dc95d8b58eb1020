// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package kv

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var kvBucket = []byte("secure_kv")

// BoltBackend stores values in a single bbolt bucket. Every write is one
// bbolt transaction, which makes Put and CompareAndSwap atomic.
type BoltBackend struct {
	db *bbolt.DB
}

// OpenBoltBackend opens or creates the database file at path.
func OpenBoltBackend(path string) (*BoltBackend, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(kvBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Get(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(kvBucket).Get([]byte(key))
		if raw != nil {
			// raw is only valid inside the transaction
			value, ok = string(raw), true
		}
		return nil
	})
	return value, ok, err
}

// Put writes all entries in one bbolt transaction.
func (b *BoltBackend) Put(_ context.Context, entries map[string]string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(kvBucket)
		for k, v := range entries {
			if err := bucket.Put([]byte(k), []byte(v)); err != nil {
				return fmt.Errorf("put %s: %w", k, err)
			}
		}
		return nil
	})
}

func (b *BoltBackend) Delete(_ context.Context, keys ...string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(kvBucket)
		for _, k := range keys {
			if err := bucket.Delete([]byte(k)); err != nil {
				return fmt.Errorf("delete %s: %w", k, err)
			}
		}
		return nil
	})
}

// CompareAndSwap compares and writes inside a single update transaction.
func (b *BoltBackend) CompareAndSwap(_ context.Context, key, expected, value string) (bool, error) {
	swapped := false
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(kvBucket)
		current := bucket.Get([]byte(key))
		if expected == "" {
			if current != nil {
				return nil
			}
		} else if current == nil || string(current) != expected {
			return nil
		}

		if err := bucket.Put([]byte(key), []byte(value)); err != nil {
			return err
		}
		swapped = true
		return nil
	})
	return swapped, err
}

// Close closes the database file.
func (b *BoltBackend) Close() error {
	return b.db.Close()
}
