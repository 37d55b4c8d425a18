package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage names used as the "stage" label.
const (
	StageParse   = "parse"
	StageReduce  = "reduce"
	StageAnalyze = "analyze"
)

// Run outcomes used as the "outcome" label.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

const millisecondsPerSecond = 1000

// defaultStageBuckets covers sub-millisecond runs up to a few seconds.
var defaultStageBuckets = []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000, 5000} //nolint:gochecknoglobals // immutable defaults

// Manager owns the metrics of a nightwatch process. A nil *Manager is valid
// and records nothing.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         *prometheus.Registry

	linesParsed   prometheus.Counter
	events        *prometheus.CounterVec
	runs          *prometheus.CounterVec
	guards        prometheus.Gauge
	sleepMinutes  prometheus.Gauge
	stageDuration *prometheus.HistogramVec
	lastRun       prometheus.Gauge
}

// NewManager creates a manager on a private registry unless one is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "nightwatch",
		subsystem:        "pipeline",
		histogramBuckets: defaultStageBuckets,
		constLabels:      map[string]string{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.linesParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "lines_parsed_total",
		Help:        "Total number of log lines parsed into events",
		ConstLabels: labels,
	})

	m.events = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_total",
		Help:        "Total number of reduced events by kind",
		ConstLabels: labels,
	}, []string{"kind"})

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Total number of pipeline runs by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.guards = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "guards",
		Help:        "Number of distinct guards in the last run",
		ConstLabels: labels,
	})

	m.sleepMinutes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sleep_minutes",
		Help:        "Minutes asleep summed over all guards in the last run",
		ConstLabels: labels,
	})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stage_duration_milliseconds",
		Help:        "Duration of each pipeline stage in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"stage"})

	m.lastRun = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_timestamp_seconds",
		Help:        "Unix time of the last finished run",
		ConstLabels: labels,
	})
}

// Registry returns the registry backing m.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// AddLinesParsed counts parsed lines.
func (m *Manager) AddLinesParsed(n int) {
	if m == nil {
		return
	}
	m.linesParsed.Add(float64(n))
}

// RecordEvent counts one event of the given kind.
func (m *Manager) RecordEvent(kind string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind).Inc()
}

// ObserveStage records how long a stage took.
func (m *Manager) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds() * millisecondsPerSecond)
}

// SetGuards sets the guard count gauge.
func (m *Manager) SetGuards(n int) {
	if m == nil {
		return
	}
	m.guards.Set(float64(n))
}

// SetSleepMinutes sets the total sleep gauge.
func (m *Manager) SetSleepMinutes(n int) {
	if m == nil {
		return
	}
	m.sleepMinutes.Set(float64(n))
}

// RecordRun counts a finished run and stamps its completion time.
func (m *Manager) RecordRun(outcome string, at time.Time) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.lastRun.Set(float64(at.Unix()))
}

// WriteTextfile writes all metrics to path in the Prometheus text format,
// suitable for the node exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
