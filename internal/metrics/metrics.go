// Package metrics registers the Prometheus collectors for the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seisan_http_requests_total",
		Help: "HTTP requests processed, partitioned by method, path and status.",
	}, []string{"method", "path", "status"})

	// SettlementBatchesTotal counts bulk settlement batches by outcome.
	SettlementBatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seisan_settlement_batches_total",
		Help: "Bulk settlement batches, partitioned by outcome.",
	}, []string{"outcome"})

	// SettlementUpdatesTotal counts individual content updates issued by
	// bulk settlement batches, by result.
	SettlementUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seisan_settlement_updates_total",
		Help: "Per-content updates issued during bulk settlement, partitioned by result.",
	}, []string{"result"})
)
