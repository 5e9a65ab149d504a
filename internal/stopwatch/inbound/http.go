package inbound

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/router"
)

// RegisterHTTPEndpoint mounts the stopwatch protocol on r. Every path and
// method is routed to the dispatcher, which matches on prefixes itself.
// Methods outside the router's ANY set, such as CONNECT, reach it through
// the fallback.
func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.ANY("/*path", end.Dispatch)
	r.Fallback(end.Dispatch)
}

// RegisterAdminEndpoint mounts health, timer listing and Prometheus metrics
// on the admin router. Metrics are registered on reg.
func RegisterAdminEndpoint(r *router.Router, uc uc, reg *prometheus.Registry) error {
	end := &AdminEndpoint{uc: uc}

	if err := reg.Register(NewCollector(uc)); err != nil {
		return err
	}

	r.GET("/health", end.Health)
	r.GET("/debug/timers", end.ListTimers)
	r.GETRaw("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return nil
}
