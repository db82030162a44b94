package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// CollectorSettings configures the optional OTLP-over-HTTP trace exporter.
// An empty Endpoint installs the noop provider; dispatch stays free of I/O.
type CollectorSettings struct {
	Endpoint      string
	CACertsBase64 string // base64-encoded PEM bundle; empty means an insecure client
}

// InstallTraceProvider installs the global trace provider based on an HTTP
// OTLP exporter. The engine never calls this on its own: exporting spans is
// the host's decision.
func InstallTraceProvider(settings CollectorSettings, serviceName string) {
	var tracerProvider trace.TracerProvider

	defer func() {
		otel.SetTracerProvider(tracerProvider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	}()

	if len(settings.Endpoint) == 0 {
		tracerProvider = trace.NewNoopTracerProvider()
		return
	}

	clientOpts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(settings.Endpoint),
	}
	if settings.CACertsBase64 != "" {
		tlsConfig, err := getTLSConfig(settings.CACertsBase64)
		if err != nil {
			fmt.Printf("building TLS config for OTLP trace exporter: %v", err)
			return
		}
		clientOpts = append(clientOpts, otlptracehttp.WithTLSClientConfig(tlsConfig))
	} else {
		clientOpts = append(clientOpts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(clientOpts...))
	if err != nil {
		fmt.Printf("creating OTLP trace exporter: %v", err)
		return
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName)))
	if err != nil {
		fmt.Printf("creating resource: %v", err)
		return
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(r))
}
