package instrument

import (
	"context"
	"testing"
	"time"
)

func TestNew_DisabledReturnsNoop(t *testing.T) {
	ins, err := New(context.Background(), &Config{Enabled: false, ServiceName: "stopwatch"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, ok := ins.(noopInstrumentation); !ok {
		t.Fatalf("New() = %T, want noopInstrumentation", ins)
	}

	_, span := ins.Tracer("test").Start(context.Background(), "op")
	span.End()

	if err := ins.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
}

func TestNew_NilConfig(t *testing.T) {
	ins, err := New(context.Background(), nil)
	if err != nil {
		t.Fatalf("New(nil) error = %v", err)
	}
	if ins == nil {
		t.Fatal("New(nil) returned nil instrumentation")
	}
}

func TestConfig_Normalized(t *testing.T) {
	tests := []struct {
		name         string
		in           Config
		wantRatio    float64
		wantInterval time.Duration
	}{
		{name: "zero value", in: Config{}, wantRatio: 0, wantInterval: defaultMetricsInterval},
		{name: "negative ratio", in: Config{TraceSampleRatio: -0.5}, wantRatio: 0, wantInterval: defaultMetricsInterval},
		{name: "ratio above one", in: Config{TraceSampleRatio: 3}, wantRatio: 1, wantInterval: defaultMetricsInterval},
		{name: "kept as is", in: Config{TraceSampleRatio: 0.25, MetricsInterval: 5 * time.Second}, wantRatio: 0.25, wantInterval: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.normalized()
			if got.TraceSampleRatio != tt.wantRatio {
				t.Fatalf("ratio = %v, want %v", got.TraceSampleRatio, tt.wantRatio)
			}
			if got.MetricsInterval != tt.wantInterval {
				t.Fatalf("interval = %v, want %v", got.MetricsInterval, tt.wantInterval)
			}
		})
	}
}

func TestOtelInstrumentation_ShutdownPartial(t *testing.T) {
	o := &otelInstrumentation{}
	if err := o.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() on empty instrumentation = %v", err)
	}
}
