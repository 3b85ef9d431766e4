// Package telemetry provides structured logging and OpenTelemetry tracing
// for the game. Spans are exported to Honeycomb over OTLP/HTTP.
package telemetry

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "dungeonadventure"
	serviceVersion = "0.1.0"

	// EnvSDKDisabled is the standard OpenTelemetry kill switch.
	EnvSDKDisabled = "OTEL_SDK_DISABLED"
)

// Setup installs the global tracer provider. The OTLP exporter reads the
// standard OTEL_EXPORTER_OTLP_* variables, so the caller points it at
// Honeycomb by setting OTEL_EXPORTER_OTLP_ENDPOINT and _HEADERS first.
//
// Exporter errors are sent to logger since the terminal belongs to the UI.
// When OTEL_SDK_DISABLED is true a no-op provider is installed. The returned
// shutdown flushes pending spans and must be called on exit.
func Setup(ctx context.Context, logger zerolog.Logger) (shutdown func(context.Context) error, err error) {
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		logger.Warn().Err(err).Msg("opentelemetry error")
	}))

	if Disabled() {
		otel.SetTracerProvider(noop.NewTracerProvider())
		logger.Info().Msg("tracing disabled")
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	// Built without resource.Default() so schema URLs never conflict.
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithOS(),
		resource.WithProcessRuntimeName(),
		resource.WithProcessRuntimeVersion(),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	logger.Info().
		Str("endpoint", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")).
		Msg("tracing enabled")
	return tp.Shutdown, nil
}

// Disabled reports whether OTEL_SDK_DISABLED asks for tracing to be off.
func Disabled() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(EnvSDKDisabled)), "true")
}

// Tracer returns the tracer for one component, e.g. "world" or "game".
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// NoopTracer returns a tracer that records nothing.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}
