package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/gostopwatch/internal/pkg/clock"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/instrument"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/entity"
	"go.opentelemetry.io/otel/trace"
)

type repoTimer interface {
	Start(name string)
	Stop(name string) (time.Duration, bool)
	Snapshot() []entity.TimerView
	Stats() entity.Stats
}

type Usecase struct {
	repo  repoTimer
	clock *clock.Monotonic
	ins   instrument.Instrumentation
}

type Dependency struct {
	Repo       repoTimer
	Clock      *clock.Monotonic
	Instrument instrument.Instrumentation
}

func NewStopwatch(dep Dependency) *Usecase {
	ins := dep.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	return &Usecase{
		repo:  dep.Repo,
		clock: dep.Clock,
		ins:   ins,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("stopwatch.usecase").Start(ctx, name)
}
