package security

import (
	"crypto/subtle"

	"golang.org/x/oauth2"
)

// GenerateState generates a cryptographically secure random OAuth state value:
// 32 random bytes encoded as a 43-character base64url string without padding.
//
// It uses oauth2.GenerateVerifier, which produces exactly that shape and panics
// if the system's random number generator fails.
func GenerateState() string {
	return oauth2.GenerateVerifier()
}

// ValidateState compares the state stored for the session with the state
// returned on the callback in constant time. An empty expected value never
// validates.
func ValidateState(expected, got string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
