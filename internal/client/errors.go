package client

import "errors"

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrUsage            = errors.New("invalid usage")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrAborted          = errors.New("aborted by user")
	ErrSyncDisabled     = errors.New("master user sync is not configured")
)
