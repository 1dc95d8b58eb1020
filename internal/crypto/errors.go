package crypto

import "errors"

// Sentinel errors of the crypto package.
var (
	// ErrDecryption is returned when a ciphertext cannot be opened: wrong
	// key, tampered bytes or an unrecognised format.
	ErrDecryption = errors.New("decryption failed")

	// ErrInvalidVerifier is returned for a malformed password verifier.
	ErrInvalidVerifier = errors.New("invalid password verifier")

	// ErrUnknownAlgorithm is returned for a cipher name outside [Algorithms].
	ErrUnknownAlgorithm = errors.New("unknown cipher algorithm")

	// ErrInvalidKey is returned when a key has the wrong length.
	ErrInvalidKey = errors.New("invalid key length")

	// ErrSessionKeyDestroyed is returned when a destroyed [SessionKey] is used.
	ErrSessionKeyDestroyed = errors.New("session key destroyed")
)
