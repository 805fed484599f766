// Package metrics exposes console counters to Prometheus.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric set:
//   - console_commands_total: backend commands by name and outcome
//   - console_command_duration_seconds: backend command latency
//   - console_refresh_skipped_total: periodic ticks skipped while a refresh was in flight
//   - console_stale_results_total: list fetches discarded because a newer refresh superseded them
//   - console_http_requests_total / console_http_request_duration_seconds: console HTTP surface
var (
	Commands = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "console_commands_total", Help: "Backend commands executed by the console."},
		[]string{"command", "outcome"},
	)
	CommandLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "console_command_duration_seconds", Help: "Backend command latency in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"command"},
	)
	RefreshSkipped = prometheus.NewCounter(prometheus.CounterOpts{Name: "console_refresh_skipped_total", Help: "Periodic refreshes skipped while one was in flight."})
	StaleResults   = prometheus.NewCounter(prometheus.CounterOpts{Name: "console_stale_results_total", Help: "Superseded list fetches that were discarded."})
	HTTPRequests   = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "console_http_requests_total", Help: "Console HTTP requests by path, method and status."},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "console_http_request_duration_seconds", Help: "Console HTTP request latency in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
)

func init() {
	prometheus.MustRegister(Commands, CommandLatency, RefreshSkipped, StaleResults, HTTPRequests, HTTPLatency)
}

// ObserveCommand records one executed backend command.
func ObserveCommand(command, outcome string, elapsed time.Duration) {
	Commands.WithLabelValues(command, outcome).Inc()
	CommandLatency.WithLabelValues(command).Observe(elapsed.Seconds())
}

// Middleware records request count and latency per route.
func Middleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := string(c.Request.Method())
		HTTPLatency.WithLabelValues(path, method).Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(path, method, strconv.Itoa(c.Response.StatusCode())).Inc()
	}
}

// Exposer serves the default Prometheus registry.
func Exposer() app.HandlerFunc {
	return adaptor.HertzHandler(promhttp.Handler())
}
