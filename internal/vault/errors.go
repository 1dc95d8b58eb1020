package vault

import "errors"

var (
	ErrVaultLocked            = errors.New("vault is locked")
	ErrVaultCorrupted         = errors.New("vault data is corrupted")
	ErrRecordNotFound         = errors.New("record not found")
	ErrConcurrentModification = errors.New("vault was modified concurrently")
	ErrInvalidRecord          = errors.New("invalid record")
	ErrIDExhausted            = errors.New("could not allocate a unique record id")
)
