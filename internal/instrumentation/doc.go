// Package instrumentation provides OpenTelemetry metrics and tracing
// for the aireply application.
//
// The provider is configured through environment variables (see Config)
// and is disabled by default for interactive CLI runs. When enabled,
// metrics and traces can be exported to stdout (development) or an OTLP
// collector.
//
// Recorded metrics cover mail provider API operations, AI generation
// operations, and the signed-in session gauge. Spans are created per
// session operation via StartOperationSpan.
package instrumentation
