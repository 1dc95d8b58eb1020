// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNotConfigured is returned by NewServer when the listen address or the
// handler is missing.
var errNotConfigured = errors.New("server needs a listen address and a handler")
