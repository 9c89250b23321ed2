package infra

import (
	"context"
	"encoding/binary"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type TelemetryRessources struct {
	TracerProvider    trace.TracerProvider
	Tracer            trace.Tracer
	TextMapPropagator propagation.TextMapPropagator
	shutdown          func(context.Context) error
}

func (t TelemetryRessources) Shutdown(ctx context.Context) error {
	if t.shutdown == nil {
		return nil
	}
	return t.shutdown(ctx)
}

func NoopTelemetry() TelemetryRessources {
	return TelemetryRessources{
		TracerProvider: noop.NewTracerProvider(),
		Tracer:         noop.Tracer{},
	}
}

func InitTelemetry(configuration TelemetryConfiguration, apiVersion string) (TelemetryRessources, error) {
	if !configuration.Enabled {
		return NoopTelemetry(), nil
	}

	exporter, err := otlptracegrpc.New(context.Background())
	if err != nil {
		return TelemetryRessources{}, errors.Wrap(err, "otlptracegrpc.New error")
	}

	res, err := resource.New(context.Background(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(configuration.ApplicationName),
			semconv.ServiceVersion(apiVersion),
		),
	)
	if err != nil {
		return TelemetryRessources{}, errors.Wrap(err, "resource.New error")
	}

	rate := configuration.SamplingRate
	if rate <= 0 {
		rate = DEFAULT_SAMPLING_RATE
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(RouteSampler{DefaultRate: rate}),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	propagators := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
	otel.SetTextMapPropagator(propagators)

	return TelemetryRessources{
		TracerProvider:    tp,
		Tracer:            tp.Tracer(configuration.ApplicationName),
		TextMapPropagator: propagators,
		shutdown:          tp.Shutdown,
	}, nil
}

const DEFAULT_SAMPLING_RATE = 0.3

var defaultRoutePrefixSampling = map[string]float64{
	"/liveness": 0.0,
	"/metrics":  0.0,
}

// RouteSampler drops probes, follows the parent decision, and samples the rest at DefaultRate.
// Internal spans (fan-outs, catalog builds) are always kept when their parent is.
type RouteSampler struct {
	DefaultRate float64
}

func (RouteSampler) Description() string {
	return "caseview-route-sampler"
}

func (s RouteSampler) ShouldSample(p sdktrace.SamplingParameters) sdktrace.SamplingResult {
	psc := trace.SpanContextFromContext(p.ParentContext)
	if psc.HasTraceID() && !psc.IsSampled() {
		return sdktrace.NeverSample().ShouldSample(p)
	}
	if psc.IsSampled() {
		return sdktrace.AlwaysSample().ShouldSample(p)
	}

	prob := s.DefaultRate
	for _, attr := range p.Attributes {
		if attr.Key != semconv.HTTPRouteKey {
			continue
		}
		for prefix, prefixProb := range defaultRoutePrefixSampling {
			if strings.HasPrefix(attr.Value.AsString(), prefix) {
				prob = prefixProb
			}
		}
	}

	decision := sdktrace.Drop
	traceId := binary.BigEndian.Uint64(p.TraceID[:8])
	if traceId < uint64(prob*float64(math.MaxUint64)) {
		decision = sdktrace.RecordAndSample
	}
	return sdktrace.SamplingResult{
		Decision:   decision,
		Attributes: p.Attributes,
		Tracestate: psc.TraceState(),
	}
}
