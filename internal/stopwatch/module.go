package stopwatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/clock"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/instrument"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/router"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/validator"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/inbound"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/outbound/memory"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/usecase"
)

type Dependency struct {
	Clock      *clock.Monotonic           `validate:"required"`
	Registry   *memory.Registry           `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Validator  validator.Validator        `validate:"required"`

	// AdminRouter and Metrics are optional; both must be set to mount the
	// admin endpoints.
	AdminRouter *router.Router
	Metrics     *prometheus.Registry
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.NewStopwatch(usecase.Dependency{
		Repo:       dep.Registry,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	if dep.AdminRouter != nil && dep.Metrics != nil {
		if err := inbound.RegisterAdminEndpoint(dep.AdminRouter, uc, dep.Metrics); err != nil {
			return err
		}
	}

	return nil
}
