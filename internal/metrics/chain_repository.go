package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chainRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "text2sql",
		Subsystem: "chain_repository",
		Name:      "operations_total",
		Help:      "Count of chain repository operations.",
	}, []string{"operation", "status"})
	chainRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "text2sql",
		Subsystem: "chain_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of chain repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "status"})
)

// ObserveChainRepository records duration and status of a repository operation.
func ObserveChainRepository(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	chainRepositoryRequestsTotal.WithLabelValues(operation, status).Inc()
	chainRepositoryRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
