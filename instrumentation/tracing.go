package instrumentation

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names
const (
	SpanExchangeCode = "discord.exchange_code"
	SpanFetchUser    = "discord.fetch_user"
)

// Common span attribute keys
//
// SECURITY WARNING: Never record actual credential values (access tokens,
// refresh tokens, authorization codes, client secrets) in traces or metrics.
// Only record metadata such as token types, expiry and granted scopes.
const (
	AttrClientID   = "oauth.client_id"  // Client identifier (non-secret)
	AttrUserID     = "oauth.user_id"    // Discord user snowflake (non-secret)
	AttrScope      = "oauth.scope"      // Requested or granted scopes
	AttrGrantType  = "oauth.grant_type" // OAuth grant type
	AttrTokenType  = "oauth.token_type" //nolint:gosec // Token type (Bearer, etc.) - NOT the actual token
	AttrExpiresIn  = "oauth.expires_in" // Token lifetime in seconds
	AttrCodeLength = "oauth.code.length"

	AttrProviderName      = "provider.name"
	AttrProviderOperation = "provider.operation"
	AttrProviderErrorType = "provider.error_type"

	AttrHTTPMethod     = "http.method"
	AttrHTTPEndpoint   = "http.endpoint"
	AttrHTTPStatusCode = "http.status_code"
)

// ProviderName is recorded on every span as AttrProviderName
const ProviderName = "discord"

// RecordError records an error on a span with proper status codes (nil-safe)
func RecordError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess marks a span as successful (nil-safe)
func SetSpanSuccess(span trace.Span) {
	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
}

// SetSpanAttributes sets attributes on a span (nil-safe)
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span != nil {
		span.SetAttributes(attrs...)
	}
}

// AddOAuthFlowAttributes adds common OAuth flow attributes to a span (nil-safe)
func AddOAuthFlowAttributes(span trace.Span, clientID, userID, scope string) {
	if clientID != "" {
		SetSpanAttributes(span, attribute.String(AttrClientID, clientID))
	}
	if userID != "" {
		SetSpanAttributes(span, attribute.String(AttrUserID, userID))
	}
	if scope != "" {
		SetSpanAttributes(span, attribute.String(AttrScope, scope))
	}
}

// AddProviderAttributes adds provider attributes to a span (nil-safe)
func AddProviderAttributes(span trace.Span, operation string) {
	SetSpanAttributes(span,
		attribute.String(AttrProviderName, ProviderName),
		attribute.String(AttrProviderOperation, operation),
	)
}

// AddHTTPAttributes adds HTTP request attributes to a span (nil-safe).
// statusCode 0 means no response was received and is not recorded.
func AddHTTPAttributes(span trace.Span, method, endpoint string, statusCode int) {
	SetSpanAttributes(span,
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPEndpoint, endpoint),
	)
	if statusCode != 0 {
		SetSpanAttributes(span, attribute.Int(AttrHTTPStatusCode, statusCode))
	}
}

// AddTokenAttributes records token metadata, never the token itself (nil-safe)
func AddTokenAttributes(span trace.Span, tokenType string, expiresIn int64) {
	SetSpanAttributes(span,
		attribute.String(AttrTokenType, tokenType),
		attribute.Int64(AttrExpiresIn, expiresIn),
	)
}
