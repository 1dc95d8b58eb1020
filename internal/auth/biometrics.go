package auth

import "context"

//go:generate mockgen -source=biometrics.go -destination=../mock/biometrics_mock.go -package=mock

// Biometrics is the platform sensor: a capability probe and a single
// prompt. It never sees secret material.
type Biometrics interface {
	// Available reports whether hardware is present and enrolled.
	Available(ctx context.Context) bool
	// Authenticate shows the prompt. A nil error means the user passed.
	Authenticate(ctx context.Context, reason string) error
}

// NoBiometrics is used on hosts without a sensor.
type NoBiometrics struct{}

func (NoBiometrics) Available(context.Context) bool { return false }

func (NoBiometrics) Authenticate(context.Context, string) error { return ErrBiometricUnavailable }
