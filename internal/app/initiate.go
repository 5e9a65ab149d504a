package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/clock"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/config"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/goroutine"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/instrument"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/router"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/uid"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/validator"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/entity"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/outbound/memory"
)

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
		LogLevel:         a.config.GetString("instrument.log_level"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.NewMonotonic(clock.New())
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(goroutine.DefaultMaxGoroutine)

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator
}

func (a *App) initSettings() {
	s := loadSettings(a.config)
	if err := a.validator.Validate(s); err != nil {
		slog.Error("invalid server settings", "error", err)
		os.Exit(1)
	}

	a.settings = s
}

func (a *App) initResources() {
	a.registry = memory.NewRegistry(a.clock, entity.MaxTimerAge)

	a.metrics = prometheus.NewRegistry()
	a.metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
		Name:       "stopwatch",
	})

	var handler http.Handler = a.router
	if len(a.settings.CORSOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: a.settings.CORSOrigins,
			AllowedMethods: []string{
				http.MethodGet,
				http.MethodHead,
				http.MethodPost,
				http.MethodPut,
				http.MethodPatch,
				http.MethodDelete,
				http.MethodOptions,
			},
			AllowedHeaders:     []string{"*"},
			AllowCredentials:   true,
			OptionsPassthrough: true,
		}).Handler(a.router)
	}

	a.httpServer = &http.Server{
		Addr:              a.settings.HTTPAddress,
		Handler:           handler,
		ReadHeaderTimeout: a.settings.ReadHeaderTimeout,
		IdleTimeout:       a.settings.IdleTimeout,
	}
	a.banner = os.Stdout

	if !a.settings.AdminEnabled {
		return
	}

	a.adminRouter = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
		Name:       "admin",
	})

	a.adminServer = &http.Server{
		Addr:              a.settings.AdminAddress,
		Handler:           a.adminRouter,
		ReadHeaderTimeout: a.settings.ReadHeaderTimeout,
		IdleTimeout:       a.settings.IdleTimeout,
	}
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
