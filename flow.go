package discordauth

import "context"

// Flow is the authorization code flow as seen by code hosting the login and
// callback routes. *Endpoint implements it; mock.Flow stands in for it in
// handler tests.
type Flow interface {
	// AuthorizationURL returns the URL to redirect the user's browser to
	AuthorizationURL() string

	// AuthorizationURLWithState is AuthorizationURL with a CSRF state value
	AuthorizationURLWithState(state string) string

	// ExchangeCode exchanges the code from the redirect callback for a token
	ExchangeCode(ctx context.Context, code string) (*Token, error)

	// FetchUser returns the profile of the token's user
	FetchUser(ctx context.Context, token *Token) (*User, error)
}
