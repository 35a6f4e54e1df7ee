package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint is the lowercase hex SHA-256 of an already normalized string.
// It doubles as the public record id.
func Fingerprint(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
