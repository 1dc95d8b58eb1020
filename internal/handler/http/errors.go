// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidQuery is returned for unknown list filter values.
	ErrInvalidQuery = errors.New("invalid query parameter")

	// ErrUnsupportedMediaType is returned when a request that must carry
	// JSON declares another content type.
	ErrUnsupportedMediaType = errors.New("content type must be application/json")

	// ErrResetNotConfirmed is returned when a reset request does not echo
	// the confirmation word.
	ErrResetNotConfirmed = errors.New(`reset must be confirmed with {"confirm":"RESET"}`)

	// ErrSyncDisabled is returned by the sync routes when no master user is
	// configured.
	ErrSyncDisabled = errors.New("sync is not configured")
)
