package discordauth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/oauth2"

	"github.com/giantswarm/discord-oauth/instrumentation"
	"github.com/giantswarm/discord-oauth/security"
)

// Compile-time check that Endpoint implements Flow.
var _ Flow = (*Endpoint)(nil)

// maxResponseBodySize caps how much of a Discord response is read.
const maxResponseBodySize = 1 << 20

// ErrNilToken is returned by FetchUser when called without a token.
var ErrNilToken = errors.New("discordauth: token is nil")

// Endpoint runs the authorization code flow for one login configuration:
// an Application, the scopes to request and the registered redirect URI.
//
// Endpoint holds no per-call state. ExchangeCode and FetchUser may be called
// any number of times, concurrently, with unrelated codes and tokens.
type Endpoint struct {
	app         *Application
	scopes      []string
	redirectURI string

	oauth  *oauth2.Config
	tracer trace.Tracer
}

// NewEndpoint creates an Endpoint. scopes is copied. redirectURI is sent as
// is; it must match a redirect registered for the application in the Discord
// developer portal.
func NewEndpoint(app *Application, scopes []string, redirectURI string) *Endpoint {
	scopesCopy := make([]string, len(scopes))
	copy(scopesCopy, scopes)

	var tracer trace.Tracer = tracenoop.NewTracerProvider().Tracer("")
	if app.instrumentation != nil {
		tracer = app.instrumentation.Tracer("endpoint")
	}

	return &Endpoint{
		app:         app,
		scopes:      scopesCopy,
		redirectURI: redirectURI,
		oauth: &oauth2.Config{
			ClientID:     app.clientID,
			ClientSecret: app.clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       scopesCopy,
			Endpoint: oauth2.Endpoint{
				AuthURL:  app.endpoints.AuthorizeURL,
				TokenURL: app.endpoints.TokenURL,
				// Discord accepts credentials in the body. Setting the style
				// explicitly also stops oauth2 from probing with a second request.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		tracer: tracer,
	}
}

// Application returns the application this endpoint acts for.
func (e *Endpoint) Application() *Application {
	return e.app
}

// Scopes returns a copy of the requested scopes.
func (e *Endpoint) Scopes() []string {
	scopes := make([]string, len(e.scopes))
	copy(scopes, e.scopes)
	return scopes
}

// RedirectURI returns the redirect URI sent to Discord.
func (e *Endpoint) RedirectURI() string {
	return e.redirectURI
}

// AuthorizationURL returns the URL to send the user's browser to. The query
// carries client_id, redirect_uri, response_type=code and scope (requested
// scopes joined by a single space), form-encoded with keys in sorted order.
func (e *Endpoint) AuthorizationURL() string {
	return e.authorizationURL("")
}

// AuthorizationURLWithState is AuthorizationURL plus a state parameter that
// Discord echoes back on the callback. An empty state adds nothing.
func (e *Endpoint) AuthorizationURLWithState(state string) string {
	return e.authorizationURL(state)
}

func (e *Endpoint) authorizationURL(state string) string {
	// AuthCodeURL drops empty redirect_uri and scope; always send both.
	var opts []oauth2.AuthCodeOption
	if e.redirectURI == "" {
		opts = append(opts, oauth2.SetAuthURLParam("redirect_uri", ""))
	}
	if len(e.scopes) == 0 {
		opts = append(opts, oauth2.SetAuthURLParam("scope", ""))
	}

	if inst := e.app.instrumentation; inst != nil {
		inst.Metrics().RecordAuthorizationURLBuilt(context.Background(), state != "")
	}

	return e.oauth.AuthCodeURL(state, opts...)
}

// ExchangeCode trades an authorization code from the redirect callback for
// an access token. It makes exactly one request and never retries.
//
// Errors are *UpstreamRequestError for a non-2xx response, *SchemaViolation
// for a 2xx body that is not a valid token, *TransportError when no response
// was received.
func (e *Endpoint) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	ctx, call := e.startCall(ctx, instrumentation.SpanExchangeCode, OperationExchangeCode,
		http.MethodPost, e.app.endpoints.TokenURL)
	instrumentation.AddOAuthFlowAttributes(call.span, e.app.clientID, "", strings.Join(e.scopes, " "))

	client, capture := captureResponse(e.app.httpClient)
	ctx = context.WithValue(ctx, oauth2.HTTPClient, client)

	if _, err := e.oauth.Exchange(ctx, code); err != nil {
		err = exchangeError(err, capture)
		call.end(statusOf(err, capture.status), err)
		return nil, err
	}

	// oauth2 tolerates absent form keys and wrong JSON types in a few places;
	// the captured body is validated field by field instead.
	token, err := parseTokenResponse(capture.contentType, capture.body)
	if err != nil {
		call.end(capture.status, err)
		return nil, err
	}

	instrumentation.AddTokenAttributes(call.span, token.TokenType, token.ExpiresIn)
	call.end(capture.status, nil)

	e.app.logger.Debug("Discord authorization code exchanged",
		"client_id", e.app.clientID,
		"scope", token.Scope,
		"expires_in", token.ExpiresIn,
		"token_fingerprint", security.Fingerprint(token.AccessToken))

	return token, nil
}

// FetchUser returns the profile of the user the token was issued to.
// It does not check that the token carries the "identify" scope; inspect
// token.Scopes() first if that matters. It makes exactly one request.
//
// Errors follow the same contract as ExchangeCode.
func (e *Endpoint) FetchUser(ctx context.Context, token *Token) (*User, error) {
	if token == nil {
		return nil, ErrNilToken
	}

	ctx, call := e.startCall(ctx, instrumentation.SpanFetchUser, OperationFetchUser,
		http.MethodGet, e.app.endpoints.UserURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.app.endpoints.UserURL, nil)
	if err != nil {
		err = &TransportError{Operation: OperationFetchUser, Err: fmt.Errorf("failed to create request: %w", err)}
		call.end(0, err)
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := e.app.httpClient.Do(req)
	if err != nil {
		err = &TransportError{Operation: OperationFetchUser, Err: err}
		call.end(0, err)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		err = &TransportError{Operation: OperationFetchUser, Err: fmt.Errorf("failed to read response: %w", err)}
		call.end(resp.StatusCode, err)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = &UpstreamRequestError{Operation: OperationFetchUser, StatusCode: resp.StatusCode, Body: body}
		call.end(resp.StatusCode, err)
		return nil, err
	}

	user, err := ParseUser(body)
	if err != nil {
		call.end(resp.StatusCode, err)
		return nil, err
	}

	instrumentation.AddOAuthFlowAttributes(call.span, e.app.clientID, user.ID, "")
	call.end(resp.StatusCode, nil)

	e.app.logger.Debug("Discord user fetched",
		"client_id", e.app.clientID,
		"user_id", user.ID,
		"token_fingerprint", security.Fingerprint(token.AccessToken))

	return user, nil
}

// exchangeError maps errors from oauth2.Config.Exchange onto this package's
// error types.
func exchangeError(err error, capture *responseCapture) error {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) {
		status := 0
		if rErr.Response != nil {
			status = rErr.Response.StatusCode
		}
		return &UpstreamRequestError{Operation: OperationExchangeCode, StatusCode: status, Body: rErr.Body}
	}

	// http.Client.Do reports every failure to obtain a response as *url.Error.
	var uErr *url.Error
	if errors.As(err, &uErr) {
		return &TransportError{Operation: OperationExchangeCode, Err: err}
	}

	// Anything else is oauth2 rejecting a 2xx body. Validate it again so the
	// violation names the offending field.
	if capture.body != nil {
		if _, perr := parseTokenResponse(capture.contentType, capture.body); perr != nil {
			return perr
		}
	}
	return &SchemaViolation{Model: tokenModel, Reason: err.Error()}
}

func statusOf(err error, fallback int) int {
	var upstream *UpstreamRequestError
	if errors.As(err, &upstream) {
		return upstream.StatusCode
	}
	return fallback
}

// apiCall tracks the span, timing and logging of one Discord API round trip.
type apiCall struct {
	e         *Endpoint
	ctx       context.Context
	span      trace.Span
	operation string
	method    string
	endpoint  string
	start     time.Time
}

func (e *Endpoint) startCall(ctx context.Context, spanName, operation, method, endpoint string) (context.Context, *apiCall) {
	ctx, span := e.tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	instrumentation.AddProviderAttributes(span, operation)

	return ctx, &apiCall{
		e:         e,
		ctx:       ctx,
		span:      span,
		operation: operation,
		method:    method,
		endpoint:  endpoint,
		start:     time.Now(),
	}
}

// end records the outcome and closes the span. statusCode is 0 when no
// response was received.
func (c *apiCall) end(statusCode int, err error) {
	defer c.span.End()

	instrumentation.AddHTTPAttributes(c.span, c.method, c.endpoint, statusCode)

	if inst := c.e.app.instrumentation; inst != nil {
		durationMs := float64(time.Since(c.start).Microseconds()) / 1000
		inst.Metrics().RecordAPICall(c.ctx, c.operation, statusCode, durationMs, errorType(err), err)
	}

	if err == nil {
		instrumentation.SetSpanSuccess(c.span)
		return
	}

	instrumentation.RecordError(c.span, err)
	c.e.app.logger.Warn("Discord API call failed",
		"operation", c.operation,
		"client_id", c.e.app.clientID,
		"status", statusCode,
		"error", err)
}

// errorType classifies err for the errors metric. Upstream errors return ""
// so the metric derives client/server from the status code.
func errorType(err error) string {
	var (
		transport *TransportError
		schema    *SchemaViolation
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &transport):
		return instrumentation.ErrorTypeTransport
	case errors.As(err, &schema):
		return instrumentation.ErrorTypeSchema
	default:
		return ""
	}
}

// responseCapture records the status of the response it carried and, for a
// 2xx response, its content type and body (up to maxResponseBodySize). The
// body is replayed to the caller unchanged. A fresh one is used per call.
type responseCapture struct {
	base        http.RoundTripper
	status      int
	contentType string
	body        []byte
}

// RoundTrip implements http.RoundTripper.
func (c *responseCapture) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	c.status = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.contentType = resp.Header.Get("Content-Type")
	c.body = body
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

// captureResponse returns a shallow copy of client whose transport records
// the response.
func captureResponse(client *http.Client) (*http.Client, *responseCapture) {
	c := *client
	rt := c.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	capture := &responseCapture{base: rt}
	c.Transport = capture
	return &c, capture
}
