package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/router"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/entity"
)

// AdminEndpoint serves the admin listener routes.
type AdminEndpoint struct {
	uc uc
}

// Health reports liveness with uptime and the live timer count.
func (h *AdminEndpoint) Health(r *router.Request) (any, error) {
	ctx := r.Context()

	return HealthResponse{
		Status:       "ok",
		UptimeNS:     h.uc.Now(ctx),
		ActiveTimers: h.uc.Stats(ctx).Active,
	}, nil
}

// ListTimers lists running timers with their current age.
func (h *AdminEndpoint) ListTimers(r *router.Request) (any, error) {
	timers := h.uc.ListTimers(r.Context())

	return ListTimersResponse(lo.Map(timers, func(t entity.TimerView, _ int) TimerResponse {
		return TimerResponse{Name: t.Name, AgeNS: t.Age.Nanoseconds()}
	})), nil
}
