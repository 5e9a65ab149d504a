package instrument

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const defaultMetricsInterval = time.Minute

// Instrumentation hands out tracers and meters and flushes them on Shutdown.
type Instrumentation interface {
	Tracer(name string) trace.Tracer
	Meter(name string) metric.Meter
	Shutdown(ctx context.Context) error
}

// Config drives logging and OpenTelemetry export.
type Config struct {
	// Enabled turns on OTLP export. The slog logger is installed either way.
	Enabled          bool
	ServiceName      string
	ServiceVersion   string
	Environment      string
	OTLPEndpoint     string
	OTLPSecure       bool
	TraceSampleRatio float64
	MetricsInterval  time.Duration
	// MaskFields are attribute keys whose values are replaced in log output.
	MaskFields []string
	// LogLevel is debug, info, warn or error. Empty means info.
	LogLevel string
}

// normalized returns a copy with the sample ratio clamped to [0, 1] and a
// default metrics interval.
func (c Config) normalized() Config {
	c.TraceSampleRatio = min(max(c.TraceSampleRatio, 0), 1)
	if c.MetricsInterval <= 0 {
		c.MetricsInterval = defaultMetricsInterval
	}
	return c
}

// New installs the default slog logger. With export enabled it also builds
// OTLP trace, metric and log pipelines sharing one resource; otherwise the
// returned Instrumentation is a noop.
func New(ctx context.Context, cfg *Config) (Instrumentation, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	c := cfg.normalized()
	logs := logOptions{service: c.ServiceName, level: ParseLevel(c.LogLevel), mask: c.MaskFields}

	if !c.Enabled {
		initLogging(os.Stdout, logs)
		return NewNoop(), nil
	}

	res, err := newResource(ctx, c)
	if err != nil {
		return nil, err
	}

	o := &otelInstrumentation{}

	if o.tracerProvider, err = newTracerProvider(ctx, c, res); err != nil {
		return nil, err
	}
	if o.meterProvider, err = newMeterProvider(ctx, c, res); err != nil {
		return nil, errors.Join(err, o.Shutdown(ctx))
	}
	if o.loggerProvider, err = newLoggerProvider(ctx, c, res); err != nil {
		return nil, errors.Join(err, o.Shutdown(ctx))
	}

	logs.provider = o.loggerProvider
	initLogging(os.Stdout, logs)

	return o, nil
}

type otelInstrumentation struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	loggerProvider *sdklog.LoggerProvider
}

func (o *otelInstrumentation) Tracer(name string) trace.Tracer {
	return o.tracerProvider.Tracer(name)
}

func (o *otelInstrumentation) Meter(name string) metric.Meter {
	return o.meterProvider.Meter(name)
}

// Shutdown flushes whichever providers were built. Logs go last so that
// records emitted while traces and metrics drain are still exported.
func (o *otelInstrumentation) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracerProvider != nil {
		errs = append(errs, o.tracerProvider.Shutdown(ctx))
	}
	if o.meterProvider != nil {
		errs = append(errs, o.meterProvider.Shutdown(ctx))
	}
	if o.loggerProvider != nil {
		errs = append(errs, o.loggerProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
