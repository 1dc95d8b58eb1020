package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyChainService manages the vault key hierarchy. A random data-encryption
// key (DEK) encrypts the vault blob; the DEK itself is stored wrapped by a
// key-encryption key (KEK) derived from the master password.
//
//	Salt, DEK = GenerateSalt() + GenerateDEK()
//	KEK       = DeriveKEK(password, salt)
//	Wrapped   = WrapKey(DEK, KEK)
type KeyChainService interface {
	// GenerateSalt returns a fresh random KDF salt.
	GenerateSalt() ([]byte, error)
	// GenerateDEK returns a fresh random 256-bit data-encryption key.
	GenerateDEK() ([]byte, error)
	// DeriveKEK stretches the master password with Argon2id.
	DeriveKEK(masterPassword string, salt []byte) []byte
	// WrapKey seals dek with kek. The result is base64 text.
	WrapKey(dek, kek []byte) (string, error)
	// UnwrapKey reverses WrapKey. A wrong kek yields [ErrDecryption].
	UnwrapKey(wrapped string, kek []byte) ([]byte, error)
}

// PasswordHasher derives and checks the stored master-password verifier.
type PasswordHasher interface {
	DeriveVerifier(password string) (string, error)
	// Verify compares in constant time. A malformed verifier yields
	// [ErrInvalidVerifier].
	Verify(password, verifier string) (bool, error)
}

// Cipher is the symmetric encryption used for the vault blob.
type Cipher interface {
	Encrypt(plaintext []byte) (string, error)
	// Decrypt fails with [ErrDecryption] on any integrity or format error.
	Decrypt(ciphertext string) ([]byte, error)
}
