// Package telemetry wires optional OpenTelemetry tracing for roll spans
package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ServiceName is the resource name reported with every span
const ServiceName = "sense-dice"

// Config selects the trace exporter
// Tracing is opt-in: an empty endpoint or Enabled=false disables it
type Config struct {
	Endpoint string `env:"SENSE_DICE_OTEL_ENDPOINT"`
	Enabled  bool   `env:"SENSE_DICE_OTEL_ENABLED" envDefault:"true"`
}

// Active reports whether Setup will install a provider
func (c Config) Active() bool {
	return c.Enabled && c.Endpoint != ""
}

// ParseConfig reads Config from the environment
func ParseConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse telemetry env: %w", err)
	}
	return cfg, nil
}

// Setup installs a global tracer provider exporting over OTLP/HTTP
// The returned shutdown flushes pending spans and should be deferred
func Setup(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(ServiceName)))
	if err != nil {
		return noop, fmt.Errorf("otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}

// Service runs Setup and shutdown inside the service hub lifecycle
type Service struct {
	cfg      Config
	logger   *slog.Logger
	shutdown func(context.Context) error
}

// NewService creates the telemetry service, logger may be nil
func NewService(cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{cfg: cfg, logger: logger}
}

// Name implements service.Service
func (s *Service) Name() string { return "telemetry" }

// Dependencies implements service.Service
func (s *Service) Dependencies() []string { return nil }

// Init implements service.Service
func (s *Service) Init(args ...any) error { return nil }

// Start implements service.Service
func (s *Service) Start() error {
	shutdown, err := Setup(context.Background(), s.cfg)
	if err != nil {
		return err
	}
	s.shutdown = shutdown
	if s.cfg.Active() {
		s.logger.Info("tracing enabled", "endpoint", s.cfg.Endpoint)
	}
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.shutdown == nil {
		return nil
	}
	shutdown := s.shutdown
	s.shutdown = nil
	if err := shutdown(context.Background()); err != nil {
		return fmt.Errorf("telemetry shutdown: %w", err)
	}
	return nil
}
