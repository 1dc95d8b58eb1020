// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the subcommand named by args[0] and returns when it is
	// done. The serve subcommand blocks until ctx is cancelled.
	Run(ctx context.Context, args []string) error

	// Close releases the storage backend.
	Close() error
}

// Prompter reads interactive input.
type Prompter interface {
	// Password reads a secret without echoing it.
	Password(prompt string) (string, error)

	// Line reads one line of plain input.
	Line(prompt string) (string, error)
}
