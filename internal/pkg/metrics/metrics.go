package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every inventory collector. It is separate from the default
// registry so that the textfile export contains only what this client records.
var Registry = prometheus.NewRegistry()

var (
	// InventoryLoadTotal counts loads by where the returned list came from.
	// source: remote/cache
	InventoryLoadTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cpeer_inventory_load_total",
			Help: "Total number of inventory loads, by the source of the returned list.",
		},
		[]string{"source"},
	)

	// MutationTotal counts writes by operation and outcome.
	// op: delete/create/upload, status: success/failed/rolled_back
	MutationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cpeer_inventory_mutation_total",
			Help: "Total number of inventory mutations, by operation and outcome.",
		},
		[]string{"op", "status"},
	)

	// CacheErrorsTotal counts local store failures that were absorbed.
	// op: get/set/encode/decode
	CacheErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cpeer_inventory_cache_errors_total",
			Help: "Local cache failures treated as an empty cache.",
		},
		[]string{"op"},
	)

	// RemoteRequestLatency records backend round trips.
	// op: list/create/delete/upload, code: HTTP status or "error"
	RemoteRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cpeer_inventory_remote_request_seconds",
			Help:    "Latency of requests to the inventory backend.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "code"},
	)

	// CachedVehicles is the size of the last snapshot written to the cache.
	CachedVehicles = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cpeer_inventory_cached_vehicles",
			Help: "Number of vehicles in the last written cache snapshot.",
		},
	)
)

func init() {
	Registry.MustRegister(InventoryLoadTotal)
	Registry.MustRegister(MutationTotal)
	Registry.MustRegister(CacheErrorsTotal)
	Registry.MustRegister(RemoteRequestLatency)
	Registry.MustRegister(CachedVehicles)
}

// WriteTextfile writes the current values of every collector in Registry to
// path in the node-exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
