// Package metrics provides Prometheus collectors for the frame loop and the
// effect runner.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Option configures a Metrics instance.
type Option func(*Metrics)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Metrics) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry registers the collectors on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(m *Metrics) {
		if reg != nil {
			m.registry = reg
		}
	}
}

// Metrics holds every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	namespace string
	registry  *prometheus.Registry

	framesProcessed    prometheus.Counter
	frameDuration      prometheus.Histogram
	handsInFrame       prometheus.Gauge
	detectorErrors     prometheus.Counter
	gesturesClassified *prometheus.CounterVec
	dispatches         *prometheus.CounterVec
	effectFailures     *prometheus.CounterVec
	effectDuration     *prometheus.HistogramVec
}

// New creates and registers the collectors.
func New(opts ...Option) *Metrics {
	m := &Metrics{
		namespace: "mudra",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)

	m.framesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "frames_processed_total",
		Help:      "Frames run through detection and classification",
	})

	m.frameDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "frame_duration_seconds",
		Help:      "Time from frame read to dispatch decision",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
	})

	m.handsInFrame = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "hands_in_frame",
		Help:      "Hands detected in the most recent frame",
	})

	m.detectorErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "detector_errors_total",
		Help:      "Frames where hand detection failed",
	})

	m.gesturesClassified = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "gestures_classified_total",
		Help:      "Frames classified as each gesture",
	}, []string{"gesture"})

	m.dispatches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "dispatches_total",
		Help:      "Gestures that fired an action",
	}, []string{"gesture", "action"})

	m.effectFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "effect_failures_total",
		Help:      "Effects that returned an error or timed out",
	}, []string{"action"})

	m.effectDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "effect_duration_seconds",
		Help:      "Effect run time",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})

	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveFrame records one processed frame.
func (m *Metrics) ObserveFrame(hands int, gesture string, took time.Duration) {
	if m == nil {
		return
	}
	m.framesProcessed.Inc()
	m.handsInFrame.Set(float64(hands))
	m.frameDuration.Observe(took.Seconds())
	if gesture != "" {
		m.gesturesClassified.WithLabelValues(gesture).Inc()
	}
}

// DetectorError records a failed detection.
func (m *Metrics) DetectorError() {
	if m == nil {
		return
	}
	m.detectorErrors.Inc()
}

// Dispatched records a fired gesture.
func (m *Metrics) Dispatched(gesture, action string) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(gesture, action).Inc()
}

// EffectDone records an effect run and whether it failed.
func (m *Metrics) EffectDone(action string, took time.Duration, err error) {
	if m == nil {
		return
	}
	m.effectDuration.WithLabelValues(action).Observe(took.Seconds())
	if err != nil {
		m.effectFailures.WithLabelValues(action).Inc()
	}
}
