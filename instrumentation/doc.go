// Package instrumentation provides OpenTelemetry (OTEL) instrumentation for the discord-oauth library.
//
// Every Discord API round trip (token exchange, user fetch) is recorded as a
// metric sample and a span. Building authorization URLs is counted as well.
//
// # Quick Start
//
// Plug into an existing OpenTelemetry setup:
//
//	inst, err := instrumentation.New(instrumentation.Config{
//		MeterProvider:  otel.GetMeterProvider(),
//		TracerProvider: otel.GetTracerProvider(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	app := discordauth.NewApplicationWithConfig(&discordauth.Config{
//		ClientID:        os.Getenv("DISCORD_CLIENT_ID"),
//		ClientSecret:    os.Getenv("DISCORD_CLIENT_SECRET"),
//		Instrumentation: inst,
//	})
//
// Or let the package build SDK providers and attach readers, e.g. a
// Prometheus exporter:
//
//	exporter, _ := prometheus.New()
//	inst, err := instrumentation.New(instrumentation.Config{
//		ServiceName:   "my-login-service",
//		Enabled:       true,
//		MetricReaders: []sdkmetric.Reader{exporter},
//	})
//	defer inst.Shutdown(context.Background())
//
// # Available Metrics
//
//   - discord.api.calls.total{operation, status} - Discord API calls
//   - discord.api.duration{operation} - API call duration in milliseconds
//   - discord.api.errors.total{operation, error_type} - Failed API calls
//   - discord.authorization_url.built{with_state} - Authorization URLs built
//
// error_type is one of client_error, server_error, transport_error,
// schema_error.
//
// # Distributed Tracing
//
//   - discord.exchange_code
//   - discord.fetch_user
//
// # Security Considerations
//
// Spans and metrics carry metadata only: client ID, user ID, scopes, token
// type and lifetime, HTTP status. Access tokens, authorization codes and the
// client secret are never recorded.
package instrumentation
