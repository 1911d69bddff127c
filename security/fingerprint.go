package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the first 16 hex characters of the SHA-256 of a secret,
// for correlating log lines without logging the secret itself.
func Fingerprint(secret string) string {
	if secret == "" {
		return "<empty>"
	}
	hash := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(hash[:])[:16]
}
