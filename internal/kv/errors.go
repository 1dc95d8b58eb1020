// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package kv

import "errors"

// Sentinel errors returned by [SecureStore]. Callers match them with
// [errors.Is].
var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = errors.New("key not found")

	// ErrStorageUnavailable wraps every failure of the underlying backend.
	ErrStorageUnavailable = errors.New("secure storage unavailable")

	// ErrConflict is returned by CompareAndSwap when the stored value no
	// longer matches the expected one.
	ErrConflict = errors.New("stored value changed concurrently")

	// ErrUnknownKey is returned for keys outside [Keys].
	ErrUnknownKey = errors.New("unknown storage key")

	// ErrUnsupportedDriver is returned by [OpenBackend] for an unknown driver name.
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
)
