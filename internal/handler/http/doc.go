// Package http is the local JSON API a UI shell talks to.
//
// Routes map one to one onto authentication, settings, vault and sync
// operations. Record routes sit behind a gate that applies the auto-lock
// timeout lazily and answers 423 Locked while the vault is locked.
package http
