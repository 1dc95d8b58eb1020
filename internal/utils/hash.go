package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader carries the HMAC of a pushed or pulled dataset.
const SignatureHeader = "X-OneLock-Signature"

// Sign returns the hex HMAC-SHA256 of data under key.
//
//	sig := utils.Sign(body, syncKey)
func Sign(data []byte, key string) string {
	return hex.EncodeToString(sign(data, key))
}

// VerifySignature reports whether signature is the hex HMAC of data under
// key. The comparison is constant time.
func VerifySignature(data []byte, key, signature string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, sign(data, key))
}

func sign(data []byte, key string) []byte {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(data)
	return mac.Sum(nil)
}
