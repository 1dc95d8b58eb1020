// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the onelock command line application.
//
// It wires configuration, storage, the auth manager, the vault and the
// master-user extension into a single process and dispatches one
// subcommand per invocation. Unlock state does not outlive the process, so
// every command that touches the vault asks for the master password (or
// reads it from ONELOCK_MASTER_PASSWORD).
package client
