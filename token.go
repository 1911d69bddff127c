package discordauth

import (
	"fmt"
	"mime"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/giantswarm/discord-oauth/security"
)

const tokenModel = "token"

// Token is the access token issued by Discord's token endpoint.
//
// ExpiresIn is relative to the moment the token was issued. Discord does not
// send an absolute timestamp, so callers that track expiry must record the
// issue time themselves and pass it to ExpiresAt or IsExpired.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`

	// RefreshToken is recorded when Discord sends one. This library never uses it.
	RefreshToken string `json:"refresh_token,omitempty"`
}

// ParseToken validates a token endpoint response body.
func ParseToken(body []byte) (*Token, error) {
	f, err := decodeFields(tokenModel, body)
	if err != nil {
		return nil, err
	}
	return tokenFromFields(f)
}

// parseTokenResponse validates a token endpoint body in either encoding
// Discord may answer with: JSON, or form values for
// application/x-www-form-urlencoded and text/plain.
func parseTokenResponse(contentType string, body []byte) (*Token, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "application/x-www-form-urlencoded", "text/plain":
		return parseFormToken(body)
	default:
		return ParseToken(body)
	}
}

// parseFormToken validates a form-encoded token body. Only keys actually
// present are considered, so an absent scope is reported rather than read as "".
func parseFormToken(body []byte) (*Token, error) {
	vals, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, &SchemaViolation{Model: tokenModel, Reason: fmt.Sprintf("body is not form encoded: %v", err)}
	}

	data := make(map[string]any, len(vals))
	for name := range vals {
		v := vals.Get(name)
		if name == "expires_in" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				data[name] = n
				continue
			}
		}
		data[name] = v
	}
	return tokenFromFields(&fields{model: tokenModel, data: data})
}

func tokenFromFields(f *fields) (*Token, error) {
	var (
		t   Token
		err error
	)
	if t.AccessToken, err = f.requiredString("access_token"); err != nil {
		return nil, err
	}
	if t.TokenType, err = f.requiredString("token_type"); err != nil {
		return nil, err
	}
	if t.ExpiresIn, err = f.requiredInt("expires_in"); err != nil {
		return nil, err
	}
	if t.Scope, err = f.requiredString("scope"); err != nil {
		return nil, err
	}
	refresh, err := f.optionalString("refresh_token")
	if err != nil {
		return nil, err
	}
	if refresh != nil {
		t.RefreshToken = *refresh
	}
	return &t, nil
}

// Scopes splits the granted scope string on single spaces.
//
// An empty scope string yields a one-element slice holding "", not an empty
// slice. Joining the result with " " always reproduces Scope.
func (t *Token) Scopes() []string {
	return strings.Split(t.Scope, " ")
}

// HasScope reports whether the token was granted the named scope.
func (t *Token) HasScope(name string) bool {
	for _, s := range t.Scopes() {
		if s == name {
			return true
		}
	}
	return false
}

// ExpiresAt returns the absolute expiry for a token issued at issuedAt.
func (t *Token) ExpiresAt(issuedAt time.Time) time.Time {
	return issuedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// IsExpired reports whether a token issued at issuedAt has expired, allowing
// for security.DefaultClockSkewGracePeriod.
func (t *Token) IsExpired(issuedAt time.Time) bool {
	return security.IsTokenExpired(t.ExpiresAt(issuedAt))
}

// ExpiresWithin reports whether a token issued at issuedAt expires within
// window from now. An expired token also reports true.
func (t *Token) ExpiresWithin(issuedAt time.Time, window time.Duration) bool {
	return security.IsTokenExpiringSoon(t.ExpiresAt(issuedAt), window)
}

// OAuth2Token converts the token for use with golang.org/x/oauth2 token
// sources, e.g. to call other Discord API endpoints.
func (t *Token) OAuth2Token(issuedAt time.Time) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.ExpiresAt(issuedAt),
		ExpiresIn:    t.ExpiresIn,
	}
}
