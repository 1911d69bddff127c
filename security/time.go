package security

import "time"

// DefaultClockSkewGracePeriod absorbs small clock differences between this
// host and Discord when checking token expiry. A token is only reported as
// expired once it has been expired for longer than this.
const DefaultClockSkewGracePeriod = 5 * time.Second

// IsTokenExpired reports whether expiresAt passed more than
// DefaultClockSkewGracePeriod ago.
func IsTokenExpired(expiresAt time.Time) bool {
	return expiredBy(expiresAt, time.Now().Add(-DefaultClockSkewGracePeriod))
}

// IsTokenExpiringSoon reports whether expiresAt falls before now+window,
// e.g. to ask the user to log in again before the session breaks. An already
// expired token is expiring soon.
func IsTokenExpiringSoon(expiresAt time.Time, window time.Duration) bool {
	return expiredBy(expiresAt, time.Now().Add(window))
}

// expiredBy reports whether a token expiring at expiresAt is expired at
// instant at. A zero expiresAt is unknown and never expired.
func expiredBy(expiresAt, at time.Time) bool {
	return !expiresAt.IsZero() && at.After(expiresAt)
}
