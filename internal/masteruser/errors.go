package masteruser

import "errors"

var (
	ErrNotConfigured      = errors.New("master user is not configured")
	ErrNotMasterUser      = errors.New("current profile is not the master user")
	ErrInvalidCredentials = errors.New("invalid master user credentials")
	ErrInvalidDataset     = errors.New("invalid dataset")
	ErrBadSignature       = errors.New("dataset signature mismatch")
	ErrRemote             = errors.New("remote request failed")
)
