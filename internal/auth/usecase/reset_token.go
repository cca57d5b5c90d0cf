package usecase

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// Reset codes carry 256 bits of entropy. Only the sha256 of the code
// is persisted; the plaintext goes out by mail and is never logged.

func newResetCode() (plaintext, hash string, err error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	plaintext = hex.EncodeToString(raw)
	return plaintext, hashResetCode(plaintext), nil
}

func hashResetCode(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
