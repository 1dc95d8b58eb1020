// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package kv

// Keys of the fixed set persisted by onelock. Nothing else is ever written,
// so [SecureStore.ClearAll] can enumerate them.
const (
	// KeyMasterPasswordHash holds the salted password verifier.
	KeyMasterPasswordHash = "master_password_hash"

	// KeyVaultKeySalt holds the base64 salt used to derive the key-encryption key.
	KeyVaultKeySalt = "vault_key_salt"

	// KeyVaultKeyWrapped holds the data-encryption key wrapped by the
	// key-encryption key.
	KeyVaultKeyWrapped = "vault_key_wrapped"

	// KeyVaultBlob holds the encrypted record collection.
	KeyVaultBlob = "passwords_data"

	KeyUsername         = "username"
	KeyBiometricEnabled = "biometric_enabled"
	KeyAutoLockMinutes  = "auto_lock_minutes"
	KeyTheme            = "theme"
	KeyLastUnlockTime   = "last_unlock_time"
	KeyUserType         = "user_type"
	KeyLastSyncTime     = "last_sync_time"
)

// Keys is the complete key set.
var Keys = []string{
	KeyMasterPasswordHash,
	KeyVaultKeySalt,
	KeyVaultKeyWrapped,
	KeyUsername,
	KeyBiometricEnabled,
	KeyAutoLockMinutes,
	KeyTheme,
	KeyVaultBlob,
	KeyLastUnlockTime,
	KeyUserType,
	KeyLastSyncTime,
}

// IsKnownKey reports whether key belongs to [Keys].
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
