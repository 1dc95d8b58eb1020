// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for vault records and
// the master password rules.
//
// The vault validates every decoded blob and every mutation through a
// Validator; the CLI and HTTP surfaces reuse it for early feedback.
package validators

import "context"

// Validator validates an arbitrary value, optionally restricted to the
// named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
