package discordauth

import (
	"log/slog"
	"net/http"

	"github.com/giantswarm/discord-oauth/instrumentation"
)

// DefaultUserAgent identifies this library on every outbound request.
const DefaultUserAgent = "DiscordOauth"

// Discord API endpoints
const (
	AuthorizeURL = "https://discord.com/api/oauth2/authorize"
	TokenURL     = "https://discord.com/api/oauth2/token"
	UserURL      = "https://discord.com/api/v10/users/@me"
)

// Endpoints holds the Discord URLs used by an Application.
type Endpoints struct {
	AuthorizeURL string
	TokenURL     string
	UserURL      string
}

// DefaultEndpoints returns Discord's production endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		AuthorizeURL: AuthorizeURL,
		TokenURL:     TokenURL,
		UserURL:      UserURL,
	}
}

// Config holds Discord application configuration.
// Only ClientID and ClientSecret are meaningful to Discord; everything else
// tunes how requests are issued.
type Config struct {
	// ClientID is the Discord application's client ID.
	ClientID string

	// ClientSecret is the Discord application's client secret.
	// It is sent only in the token exchange body and never logged.
	ClientSecret string

	// UserAgent is set on every outbound request (default: "DiscordOauth").
	UserAgent string

	// HTTPClient is an optional base client. Its Transport is wrapped to set
	// the User-Agent header; its Timeout, Jar and CheckRedirect are kept.
	// No timeout is applied when this is nil.
	HTTPClient *http.Client

	// Logger for structured logging (optional, uses slog.Default() if not provided)
	Logger *slog.Logger

	// Instrumentation records metrics and traces for API calls (optional).
	Instrumentation *instrumentation.Instrumentation

	// Endpoints overrides the Discord URLs, e.g. for a test server or an
	// egress proxy. Empty fields fall back to the production URLs.
	Endpoints Endpoints
}

// applyDefaults fills unset fields. It never fails: credentials are opaque
// and are not checked until Discord sees them.
func (c *Config) applyDefaults() {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	defaults := DefaultEndpoints()
	if c.Endpoints.AuthorizeURL == "" {
		c.Endpoints.AuthorizeURL = defaults.AuthorizeURL
	}
	if c.Endpoints.TokenURL == "" {
		c.Endpoints.TokenURL = defaults.TokenURL
	}
	if c.Endpoints.UserURL == "" {
		c.Endpoints.UserURL = defaults.UserURL
	}
}
