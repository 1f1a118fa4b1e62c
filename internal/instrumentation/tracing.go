package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for the aireply package.
const TracerName = "github.com/syedahmad/aireply"

// Span attribute keys for operations.
const (
	// SpanAttrOperation is the session operation name attribute.
	SpanAttrOperation = "aireply.operation"

	// SpanAttrThread is the mail thread identifier attribute.
	SpanAttrThread = "aireply.thread"
)

// StartOperationSpan starts a span for a session operation using the
// globally registered tracer provider. The returned span must be ended
// by the caller.
func StartOperationSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.Tracer(TracerName)
	spanAttrs := append([]attribute.KeyValue{
		attribute.String(SpanAttrOperation, operation),
	}, attrs...)
	return tracer.Start(ctx, operation, trace.WithAttributes(spanAttrs...))
}

// EndSpan completes a span, recording the error outcome when present.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// ThreadAttr returns a span attribute for a mail thread identifier.
func ThreadAttr(threadID string) attribute.KeyValue {
	return attribute.String(SpanAttrThread, threadID)
}
