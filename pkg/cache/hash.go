package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes the full 64-character hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
