package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
)

type StartTimerInput struct {
	Name string
}

// StartTimer (re)starts the named timer. It always succeeds.
func (s *Usecase) StartTimer(ctx context.Context, in StartTimerInput) error {
	ctx, span := s.startSpan(ctx, "StartTimer")
	defer span.End()

	span.SetAttributes(attribute.String("timer.name", in.Name))

	s.repo.Start(in.Name)
	slog.DebugContext(ctx, "timer started", "name", in.Name)

	return nil
}
