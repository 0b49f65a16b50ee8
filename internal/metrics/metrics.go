// Package metrics exposes render counters to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_epaper"

// Metrics implements dashboard.Recorder.
type Metrics struct {
	renders             *prometheus.CounterVec
	renderDuration      *prometheus.HistogramVec
	forecastUnavailable *prometheus.CounterVec
	iconFailures        *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "renders_total",
				Help:      "Display refreshes by variant and outcome.",
			},
			[]string{"variant", "outcome"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_duration_seconds",
				Help:      "Duration of a full refresh, fetch included.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"variant"},
		),
		forecastUnavailable: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "forecast_unavailable_total",
				Help:      "Refreshes that drew current conditions only.",
			},
			[]string{"variant"},
		),
		iconFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "icon_failures_total",
				Help:      "Icons skipped because the code was unknown or the bitmap unusable.",
			},
			[]string{"code"},
		),
	}
	reg.MustRegister(m.renders, m.renderDuration, m.forecastUnavailable, m.iconFailures)
	return m
}

func (m *Metrics) ObserveRender(variant, outcome string, d time.Duration) {
	m.renders.WithLabelValues(variant, outcome).Inc()
	m.renderDuration.WithLabelValues(variant).Observe(d.Seconds())
}

func (m *Metrics) ForecastUnavailable(variant string) {
	m.forecastUnavailable.WithLabelValues(variant).Inc()
}

func (m *Metrics) IconFailure(code int) {
	m.iconFailures.WithLabelValues(strconv.Itoa(code)).Inc()
}
