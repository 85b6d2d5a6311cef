package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// The exposition endpoint serves the three counters in the Prometheus text
// format, which is the line-oriented key-value format scrapers expect:
//
//	logs_processed 42
//	errors 3
//	queue_size 7
//
// The collector implements prometheus.Collector directly over its atomics,
// so scrapes read the live values without any intermediate registry state.

var (
	logsProcessedDesc = prometheus.NewDesc(
		"logs_processed",
		"Records that cleared the dispatcher pipeline.",
		nil, nil,
	)
	errorsDesc = prometheus.NewDesc(
		"errors",
		"Dropped records and failed handler writes.",
		nil, nil,
	)
	queueSizeDesc = prometheus.NewDesc(
		"queue_size",
		"Current depth of the bounded record queue.",
		nil, nil,
	)
)

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- logsProcessedDesc
	ch <- errorsDesc
	ch <- queueSizeDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.Snapshot()
	ch <- prometheus.MustNewConstMetric(logsProcessedDesc, prometheus.CounterValue, float64(snap.LogsProcessed))
	ch <- prometheus.MustNewConstMetric(errorsDesc, prometheus.CounterValue, float64(snap.Errors))
	ch <- prometheus.MustNewConstMetric(queueSizeDesc, prometheus.GaugeValue, float64(snap.QueueSize))
}

// Handler returns an http.Handler serving the collector's counters. Each
// call builds an independent handler over a fresh registry, so the endpoint
// can be mounted any number of times.
func (c *Collector) Handler() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(c)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
