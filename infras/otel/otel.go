package otel

import (
	"context"

	"hotelledger/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkTrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"google.golang.org/grpc/credentials/insecure"
)

// Otel opens spans for every layer of the ledger.
type Otel interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
	Shutdown(ctx context.Context) error
}

type otelImpl struct {
	provider *sdkTrace.TracerProvider
}

// NewWithProvider wraps an existing provider; tests pass one backed by an in-memory exporter.
func NewWithProvider(provider *sdkTrace.TracerProvider) Otel {
	return &otelImpl{provider: provider}
}

func (o *otelImpl) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := o.provider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, NewScope(span)
}

// Shutdown flushes pending spans.
func (o *otelImpl) Shutdown(ctx context.Context) error {
	return errors.Wrap(o.provider.Shutdown(ctx), "failed to shutdown tracer provider")
}

func serviceResource(cfg *config.Config) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.App.Name),
		semconv.DeploymentEnvironmentKey.String(cfg.Server.Env),
	)
}

// New installs the global tracer provider and W3C propagation. Without an OTLP endpoint
// spans are recorded but never exported.
func New(cfg *config.Config) Otel {
	options := []sdkTrace.TracerProviderOption{sdkTrace.WithResource(serviceResource(cfg))}

	if endpoint := cfg.External.Otel.Endpoint; endpoint != "" {
		exporter, err := otlptracegrpc.New(context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			log.Fatal().Err(err).Str("endpoint", endpoint).Msg("Failed to create OTLP exporter")
		}

		options = append(options, sdkTrace.WithBatcher(exporter))
	} else {
		log.Warn().Msg("No OTLP endpoint configured, spans stay in process")
	}

	provider := sdkTrace.NewTracerProvider(options...)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return NewWithProvider(provider)
}
