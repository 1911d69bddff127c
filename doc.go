// Package discordauth is a small client for Discord's OAuth2 authorization
// code flow.
//
// The flow has three steps, each independently callable:
//
//  1. Endpoint.AuthorizationURL builds the URL the user's browser is sent to.
//  2. Discord redirects back to the registered redirect URI with a "code"
//     query parameter (or "error" when the user declined). Handling that
//     request is up to the hosting application.
//  3. Endpoint.ExchangeCode trades the code for a Token, and
//     Endpoint.FetchUser uses the Token to load the user's profile.
//
// # Example Usage
//
//	app := discordauth.NewApplication(os.Getenv("DISCORD_CLIENT_ID"), os.Getenv("DISCORD_CLIENT_SECRET"))
//	endpoint := discordauth.NewEndpoint(app, []string{"identify", "email"}, "http://localhost:8080/callback")
//
//	// login handler
//	http.Redirect(w, r, endpoint.AuthorizationURL(), http.StatusFound)
//
//	// callback handler
//	token, err := endpoint.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
//	if err != nil {
//	    return err
//	}
//	user, err := endpoint.FetchUser(r.Context(), token)
//
// # Errors
//
// Every failure from ExchangeCode and FetchUser is one of:
//   - *UpstreamRequestError: Discord answered with a non-2xx status. Status
//     and body are kept verbatim. Retryable() reports 5xx and 429.
//   - *SchemaViolation: Discord answered 2xx but the body is not the expected
//     shape. Field names the offending field.
//   - *TransportError: no response was received (DNS, TLS, reset, context).
//
// Nothing is retried, cached or rate limited. Wrap calls in your own policy.
//
// # Concurrency
//
// Application and Endpoint are immutable and safe for concurrent use. The
// only shared mutable resource is the connection pool of the underlying
// http.Client.
package discordauth
