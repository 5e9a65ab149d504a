package app

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/clock"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/config"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/goroutine"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/instrument"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/router"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/uid"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/validator"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/outbound/memory"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config   config.Config
	settings settings
	ins      instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     *clock.Monotonic
	uuid      uid.StringID

	// resources
	registry *memory.Registry
	metrics  *prometheus.Registry

	// server
	router      *router.Router
	adminRouter *router.Router
	httpServer  *http.Server
	adminServer *http.Server
	banner      io.Writer

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initSettings()
	app.initResources()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}

// ShutdownTimeout is the grace period given to Stop.
func (a *App) ShutdownTimeout() time.Duration {
	return a.settings.ShutdownTimeout
}
