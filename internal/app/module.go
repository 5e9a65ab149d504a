package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/gostopwatch/internal/stopwatch"
)

func (a *App) initModules() {
	dep := stopwatch.Dependency{
		Clock:      a.clock,
		Registry:   a.registry,
		Router:     a.router,
		Instrument: a.ins,
		Validator:  a.validator,
	}
	if a.adminRouter != nil {
		dep.AdminRouter = a.adminRouter
		dep.Metrics = a.metrics
	}

	if err := stopwatch.New(dep); err != nil {
		slog.Error("failed to init module stopwatch", "error", err)
		os.Exit(1)
	}
}
