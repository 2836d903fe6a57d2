// Package metrics exposes evaluation counters for scrape-based monitoring.
// Collection happens outside the evaluation core and never alters results.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	StatusOK    = "ok"
	StatusError = "error"
)

type Collector struct {
	evaluations *prometheus.CounterVec
	fitness     *prometheus.HistogramVec
}

// NewCollector registers evaluation metrics on the given registerer. A nil
// *Collector is a valid no-op receiver, so callers can leave metrics off.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecotype_evaluations_total",
				Help: "Total number of fitness evaluations by environment and status",
			},
			[]string{"environment", "status"},
		),
		fitness: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ecotype_fitness",
				Help:    "Distribution of blended fitness scores by environment",
				Buckets: prometheus.LinearBuckets(0, 0.1, 11),
			},
			[]string{"environment"},
		),
	}
	if reg != nil {
		reg.MustRegister(c.evaluations, c.fitness)
	}
	return c
}

func (c *Collector) ObserveEvaluation(environment, status string, score float64) {
	if c == nil {
		return
	}
	c.evaluations.WithLabelValues(environment, status).Inc()
	if status == StatusOK {
		c.fitness.WithLabelValues(environment).Observe(score)
	}
}
