package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// GenResetToken generates the opaque single-use token for password resets:
// 32 random bytes, hex encoded.
func GenResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
