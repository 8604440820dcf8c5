package tracing

import (
	"context"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestStartClientSpan_InjectsTraceparent(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	req := httptest.NewRequest("GET", "http://backend/fhir/Organization/?page=2", nil)

	_, span := StartClientSpan(context.Background(), "fhir.search Organization", req)
	span.End()
	_ = tp.ForceFlush(context.Background())

	if req.Header.Get("traceparent") == "" {
		t.Error("expected traceparent header on outbound request")
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].SpanKind != trace.SpanKindClient {
		t.Errorf("expected client span, got %v", spans[0].SpanKind)
	}
	if spans[0].Name != "fhir.search Organization" {
		t.Errorf("unexpected span name %q", spans[0].Name)
	}
}

func TestInitProvider(t *testing.T) {
	shutdown := InitProvider("provider-directory-test", 1.0)
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	_, span := GetTracer().Start(context.Background(), "probe")
	if !span.SpanContext().IsSampled() {
		t.Error("expected span to be sampled at ratio 1.0")
	}
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}
