package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeEmail lowercases and trims an email so that casing/whitespace
// variants of one address map to the same digest.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashEmail returns the hex SHA-256 digest of the normalized email.
// The digest is the lookup/uniqueness key for identities, so the raw address
// is never queried directly and uniqueness does not depend on the
// reversible encryption key.
func HashEmail(email string) string {
	sum := sha256.Sum256([]byte(NormalizeEmail(email)))
	return hex.EncodeToString(sum[:])
}
