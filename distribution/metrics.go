package distribution

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelSuccess = "success"
	labelInvalid = "invalid"
)

// Metrics records sampler activity.
type Metrics struct {
	Samples         *prometheus.CounterVec
	Calls           *prometheus.CounterVec
	GammaIterations prometheus.Histogram
	GammaFallbacks  prometheus.Counter
}

// NewMetrics returns a new set of sampler metrics.
func NewMetrics() *Metrics {
	const (
		namespace = "variates"
		subsystem = "sampler"
	)

	return &Metrics{
		Samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "samples_total",
			Help:      "Number of variates generated",
		}, []string{"distribution"}),

		Calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "calls_total",
			Help:      "Number of sampling calls",
		}, []string{"distribution", "result"}),

		GammaIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "gamma_iterations",
			Help:      "Rejection loop iterations needed per accepted gamma variate",
			Buckets:   []float64{1, 2, 3, 5, 10, 100},
		}),

		GammaFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "gamma_fallbacks_total",
			Help:      "Number of gamma draws that hit the iteration cap",
		}),
	}
}

// PrometheusCollectors satisfies the prom.PrometheusCollector interface.
func (m *Metrics) PrometheusCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Samples,
		m.Calls,
		m.GammaIterations,
		m.GammaFallbacks,
	}
}

func (m *Metrics) observeCall(name string, n int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.Calls.WithLabelValues(name, labelInvalid).Inc()
		return
	}
	m.Calls.WithLabelValues(name, labelSuccess).Inc()
	m.Samples.WithLabelValues(name).Add(float64(n))
}

func (m *Metrics) observeGamma(iterations int, fallback bool) {
	if m == nil {
		return
	}
	m.GammaIterations.Observe(float64(iterations))
	if fallback {
		m.GammaFallbacks.Inc()
	}
}
