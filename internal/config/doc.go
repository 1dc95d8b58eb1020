// Package config loads, merges and validates the onelock configuration.
//
// Values come from four sources. For every field the first non-zero value in
// this order wins:
//  1. Command-line flags
//  2. Environment variables
//  3. JSON config file (path from -c/-config or CONFIG)
//  4. Built-in defaults
//
// The entry point is [GetStructuredConfig].
package config
