package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodeRPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "text2sql",
		Subsystem: "node_rpc_client",
		Name:      "operations_total",
		Help:      "Count of Bitcoin node RPC operations.",
	}, []string{"operation", "status"})
	nodeRPCRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "text2sql",
		Subsystem: "node_rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of Bitcoin node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

func ObserveNodeRPC(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	nodeRPCRequestsTotal.WithLabelValues(operation, status).Inc()
	nodeRPCRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
