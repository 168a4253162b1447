package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash fingerprints a fetched sheet payload. Two loads with equal
// hashes carried identical data, whatever fetch path produced them.
type ContentHash string

// HashContent computes the fingerprint of a sheet payload.
func HashContent(data []byte) ContentHash {
	sum := sha256.Sum256(data)
	return ContentHash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h ContentHash) String() string {
	return string(h)
}

// Short returns the first 12 hex digits, enough for log lines and the
// debug page.
func (h ContentHash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// IsEmpty checks if the hash is empty
func (h ContentHash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h ContentHash) Equals(other ContentHash) bool {
	return h == other
}
