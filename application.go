package discordauth

import (
	"log/slog"
	"net/http"

	"github.com/giantswarm/discord-oauth/instrumentation"
)

// Application holds a Discord application's credentials and the HTTP client
// used for every call made on its behalf. It is immutable after construction
// and safe for concurrent use; one Application may back many Endpoints.
type Application struct {
	clientID     string
	clientSecret string
	userAgent    string
	endpoints    Endpoints

	httpClient      *http.Client
	logger          *slog.Logger
	instrumentation *instrumentation.Instrumentation
}

// NewApplication creates an Application with default settings.
// It performs no validation and no network I/O.
func NewApplication(clientID, clientSecret string) *Application {
	return NewApplicationWithConfig(&Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// NewApplicationWithConfig creates an Application from cfg.
// cfg is copied; later changes to it have no effect.
func NewApplicationWithConfig(cfg *Config) *Application {
	c := *cfg
	c.applyDefaults()

	return &Application{
		clientID:        c.ClientID,
		clientSecret:    c.ClientSecret,
		userAgent:       c.UserAgent,
		endpoints:       c.Endpoints,
		httpClient:      newHTTPClient(c.HTTPClient, c.UserAgent),
		logger:          c.Logger,
		instrumentation: c.Instrumentation,
	}
}

// ClientID returns the application's client ID.
func (a *Application) ClientID() string {
	return a.clientID
}

// UserAgent returns the User-Agent sent with every request.
func (a *Application) UserAgent() string {
	return a.userAgent
}

// HTTPClient returns the client used for all outbound calls.
func (a *Application) HTTPClient() *http.Client {
	return a.httpClient
}

// String implements fmt.Stringer without exposing the client secret.
func (a *Application) String() string {
	return "discordauth.Application{ClientID: " + a.clientID + "}"
}

// GoString keeps the secret out of %#v output as well.
func (a *Application) GoString() string {
	return a.String()
}

// newHTTPClient returns a client that shares base's settings but routes
// requests through a transport that fixes the User-Agent header.
func newHTTPClient(base *http.Client, userAgent string) *http.Client {
	client := &http.Client{}
	if base != nil {
		*client = *base
	}
	rt := client.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	client.Transport = &userAgentTransport{base: rt, userAgent: userAgent}
	return client
}

// userAgentTransport sets a fixed User-Agent on every request.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

// RoundTrip implements http.RoundTripper. The caller's request is cloned,
// never modified.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}
