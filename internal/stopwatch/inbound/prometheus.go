package inbound

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "stopwatch"

// Collector exposes registry counters as Prometheus metrics. Values are read
// on every scrape, so nothing is updated on the request path.
type Collector struct {
	uc uc

	started  *prometheus.Desc
	replaced *prometheus.Desc
	stopped  *prometheus.Desc
	missed   *prometheus.Desc
	evicted  *prometheus.Desc
	active   *prometheus.Desc
	uptime   *prometheus.Desc
}

// NewCollector returns a Collector reading its values from uc.
func NewCollector(uc uc) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(metricNamespace, "", name), help, nil, nil)
	}

	return &Collector{
		uc:       uc,
		started:  desc("timers_started_total", "Timers started."),
		replaced: desc("timers_replaced_total", "Starts that discarded a running timer of the same name."),
		stopped:  desc("timers_stopped_total", "Timers stopped successfully."),
		missed:   desc("timers_missed_total", "Stops for a timer that was not running."),
		evicted:  desc("timers_evicted_total", "Timers removed by the staleness sweep."),
		active:   desc("timers_active", "Timers currently running."),
		uptime:   desc("uptime_seconds", "Seconds since the clock origin."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.started
	ch <- c.replaced
	ch <- c.stopped
	ch <- c.missed
	ch <- c.evicted
	ch <- c.active
	ch <- c.uptime
}

// Collect implements prometheus.Collector. Each scrape takes one Stats snapshot.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx := context.Background()
	stats := c.uc.Stats(ctx)

	ch <- prometheus.MustNewConstMetric(c.started, prometheus.CounterValue, float64(stats.Started))
	ch <- prometheus.MustNewConstMetric(c.replaced, prometheus.CounterValue, float64(stats.Replaced))
	ch <- prometheus.MustNewConstMetric(c.stopped, prometheus.CounterValue, float64(stats.Stopped))
	ch <- prometheus.MustNewConstMetric(c.missed, prometheus.CounterValue, float64(stats.Missed))
	ch <- prometheus.MustNewConstMetric(c.evicted, prometheus.CounterValue, float64(stats.Evicted))
	ch <- prometheus.MustNewConstMetric(c.active, prometheus.GaugeValue, float64(stats.Active))
	ch <- prometheus.MustNewConstMetric(c.uptime, prometheus.GaugeValue, time.Duration(c.uc.Now(ctx)).Seconds())
}
