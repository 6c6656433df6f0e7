// Package metrics records what scarab does so the server can expose it to
// Prometheus. Unlike a transient process we stick around when serving, so
// these are pull-based; the CLI records them too but they die with it.
package metrics

import (
	"fmt"
	"net/http"
	"os/exec"
	"os/user"
	"runtime"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/op/go-logging.v1"

	"github.com/scarab-search/scarab/src/core"
)

var log = logging.MustGetLogger("metrics")

type metrics struct {
	registry                           *prometheus.Registry
	documentsIndexed, documentsDeleted *prometheus.CounterVec
	updateHistogram                    *prometheus.HistogramVec
	searchCounter                      *prometheus.CounterVec
	searchHistogram                    *prometheus.HistogramVec
	requestCounter                     *prometheus.CounterVec
	requestHistogram                   *prometheus.HistogramVec
}

// m is the singleton metrics instance.
var m *metrics

// InitFromConfig sets up the metrics from the configuration.
func InitFromConfig(config *core.Configuration) {
	if config.Metrics.Enabled {
		defer func() {
			if r := recover(); r != nil {
				log.Fatalf("%s", r)
			}
		}()
		m = initMetrics(config.CustomLabels)
	}
}

// initMetrics initialises a new metrics instance.
// This is deliberately not exposed but is useful for testing.
func initMetrics(customLabels map[string]string) *metrics {
	u, err := user.Current()
	if err != nil {
		log.Warning("Can't determine current user name for metrics")
		u = &user.User{Username: "unknown"}
	}
	constLabels := prometheus.Labels{
		"user": u.Username,
		"arch": runtime.GOOS + "_" + runtime.GOARCH,
	}
	for k, v := range customLabels {
		constLabels[k] = deriveLabelValue(v)
	}

	m := &metrics{
		registry: prometheus.NewRegistry(),
	}

	// Documents added or updated in each index.
	m.documentsIndexed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "scarab_documents_indexed_total",
		Help:        "Count of documents indexed, by index",
		ConstLabels: constLabels,
	}, []string{"index"})

	// Documents deleted from each index.
	m.documentsDeleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "scarab_documents_deleted_total",
		Help:        "Count of documents deleted, by index",
		ConstLabels: constLabels,
	}, []string{"index"})

	// Durations of index updates.
	m.updateHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "scarab_update_duration_seconds",
		Help:        "Durations of index updates",
		Buckets:     prometheus.ExponentialBuckets(0.01, 2, 14),
		ConstLabels: constLabels,
	}, []string{"index", "mode"})

	// Count of searches against each index.
	m.searchCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "scarab_searches_total",
		Help:        "Count of searches run, by index",
		ConstLabels: constLabels,
	}, []string{"index"})

	// Durations of searches.
	m.searchHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "scarab_search_duration_seconds",
		Help:        "Durations of searches",
		Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 10),
		ConstLabels: constLabels,
	}, []string{"index"})

	// HTTP requests served.
	m.requestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "scarab_http_requests_total",
		Help:        "Count of HTTP requests served, by route and status",
		ConstLabels: constLabels,
	}, []string{"method", "route", "status"})

	// HTTP request durations.
	m.requestHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "scarab_http_request_duration_seconds",
		Help:        "Durations of HTTP requests, by route",
		Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 10),
		ConstLabels: constLabels,
	}, []string{"route"})

	m.registry.MustRegister(m.documentsIndexed, m.documentsDeleted, m.updateHistogram,
		m.searchCounter, m.searchHistogram, m.requestCounter, m.requestHistogram)
	m.registry.MustRegister(collectors.NewGoCollector())

	return m
}

// RecordUpdate records the result of an index update.
func RecordUpdate(index, mode string, indexed, deleted int, duration time.Duration) {
	if m != nil {
		m.documentsIndexed.WithLabelValues(index).Add(float64(indexed))
		m.documentsDeleted.WithLabelValues(index).Add(float64(deleted))
		m.updateHistogram.WithLabelValues(index, mode).Observe(duration.Seconds())
	}
}

// RecordSearch records a search against an index.
func RecordSearch(index string, duration time.Duration) {
	if m != nil {
		m.searchCounter.WithLabelValues(index).Inc()
		m.searchHistogram.WithLabelValues(index).Observe(duration.Seconds())
	}
}

// RecordRequest records one served HTTP request.
func RecordRequest(method, route string, status int, duration time.Duration) {
	if m != nil {
		m.requestCounter.WithLabelValues(method, route, fmt.Sprintf("%d", status)).Inc()
		m.requestHistogram.WithLabelValues(route).Observe(duration.Seconds())
	}
}

// Handler returns an HTTP handler exposing the collected metrics, or nil if
// metrics are disabled.
func Handler() http.Handler {
	if m == nil {
		return nil
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// deriveLabelValue runs a command and returns its output.
func deriveLabelValue(cmd string) string {
	parts, err := shlex.Split(cmd)
	if err != nil {
		panic(fmt.Sprintf("Invalid custom label command [%s]: %s", cmd, err))
	}
	log.Debug("Running custom label command: %s", cmd)
	b, err := exec.Command(parts[0], parts[1:]...).Output()
	if err != nil {
		panic(fmt.Sprintf("Custom label command [%s] failed: %s", cmd, err))
	}
	value := strings.TrimSpace(string(b))
	if strings.Contains(value, "\n") {
		panic(fmt.Sprintf("Custom label command [%s] returned multiple lines: %s", cmd, value))
	}
	return value
}
