package instrumentation

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func startSpan(t *testing.T) (*tracetest.SpanRecorder, *Instrumentation) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	inst, err := New(Config{
		Enabled:        true,
		SpanProcessors: []sdktrace.SpanProcessor{recorder},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = inst.Shutdown(context.Background()) })
	return recorder, inst
}

func attrMap(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestRecordError(t *testing.T) {
	recorder, inst := startSpan(t)

	_, span := inst.Tracer("api").Start(context.Background(), SpanExchangeCode)
	RecordError(span, errors.New("invalid_grant"))
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(ended))
	}
	if ended[0].Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", ended[0].Status().Code)
	}
	if len(ended[0].Events()) != 1 {
		t.Errorf("events = %d, want 1 exception event", len(ended[0].Events()))
	}
}

func TestSetSpanSuccess(t *testing.T) {
	recorder, inst := startSpan(t)

	_, span := inst.Tracer("api").Start(context.Background(), SpanFetchUser)
	SetSpanSuccess(span)
	span.End()

	if got := recorder.Ended()[0].Status().Code; got != codes.Ok {
		t.Errorf("status = %v, want Ok", got)
	}
}

func TestNilSpanHelpers(t *testing.T) {
	// Should not panic
	RecordError(nil, errors.New("boom"))
	SetSpanSuccess(nil)
	SetSpanAttributes(nil, attribute.String("k", "v"))
	AddOAuthFlowAttributes(nil, "client", "user", "identify")
	AddProviderAttributes(nil, "fetch_user")
	AddHTTPAttributes(nil, "GET", "/users/@me", 200)
	AddTokenAttributes(nil, "Bearer", 604800)
}

func TestSpanAttributes(t *testing.T) {
	recorder, inst := startSpan(t)

	_, span := inst.Tracer("api").Start(context.Background(), SpanExchangeCode)
	AddProviderAttributes(span, "exchange_code")
	AddOAuthFlowAttributes(span, "1234", "", "identify email")
	AddHTTPAttributes(span, "POST", "https://discord.com/api/oauth2/token", 200)
	AddTokenAttributes(span, "Bearer", 604800)
	span.End()

	attrs := attrMap(recorder.Ended()[0])

	want := map[attribute.Key]attribute.Value{
		AttrProviderName:      attribute.StringValue(ProviderName),
		AttrProviderOperation: attribute.StringValue("exchange_code"),
		AttrClientID:          attribute.StringValue("1234"),
		AttrScope:             attribute.StringValue("identify email"),
		AttrHTTPMethod:        attribute.StringValue("POST"),
		AttrHTTPStatusCode:    attribute.IntValue(200),
		AttrTokenType:         attribute.StringValue("Bearer"),
		AttrExpiresIn:         attribute.Int64Value(604800),
	}
	for k, v := range want {
		if got, ok := attrs[k]; !ok || got != v {
			t.Errorf("attribute %s = %v, want %v", k, got.Emit(), v.Emit())
		}
	}
	if _, ok := attrs[AttrUserID]; ok {
		t.Error("empty user ID should not be recorded")
	}
}

func TestAddHTTPAttributes_NoStatus(t *testing.T) {
	recorder, inst := startSpan(t)

	_, span := inst.Tracer("api").Start(context.Background(), SpanFetchUser)
	AddHTTPAttributes(span, "GET", "https://discord.com/api/v10/users/@me", 0)
	span.End()

	if _, ok := attrMap(recorder.Ended()[0])[AttrHTTPStatusCode]; ok {
		t.Error("status code 0 should not be recorded")
	}
}
