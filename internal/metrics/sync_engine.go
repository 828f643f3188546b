package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncPassesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "text2sql",
		Subsystem: "sync_engine",
		Name:      "passes_total",
		Help:      "Count of sync passes by outcome.",
	}, []string{"outcome"})
	syncPassDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "text2sql",
		Subsystem: "sync_engine",
		Name:      "pass_duration_seconds",
		Help:      "Duration of a full sync pass.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 14), // 50ms..~7m
	}, []string{"outcome"})
	syncBlocksStoredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "text2sql",
		Subsystem: "sync_engine",
		Name:      "blocks_stored_total",
		Help:      "Count of blocks persisted to the relational store.",
	})
	syncPrunedSkipsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "text2sql",
		Subsystem: "sync_engine",
		Name:      "pruned_skips_total",
		Help:      "Count of heights skipped because the node pruned their data.",
	})
	syncLastSyncedHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "text2sql",
		Subsystem: "sync_engine",
		Name:      "last_synced_height",
		Help:      "Highest block height the engine has advanced past.",
	})
)

func ObserveSyncPass(outcome string, started time.Time) {
	if outcome == "" {
		outcome = "unknown"
	}

	syncPassesTotal.WithLabelValues(outcome).Inc()
	syncPassDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())
}

func AddBlockStored() {
	syncBlocksStoredTotal.Inc()
}

func AddPrunedSkip() {
	syncPrunedSkipsTotal.Inc()
}

func SetLastSyncedHeight(height int64) {
	syncLastSyncedHeight.Set(float64(height))
}
