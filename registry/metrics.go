package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the composition root: how many
// devices each backend contributes, how discovery and scan starts
// are routed, and how long discovery takes.
var (
	devicesDiscovered = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "scanbridge_devices_discovered",
		Help: "Number of scanner devices currently visible, per backend.",
	}, []string{"backend"})

	discoveryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scanbridge_discovery_duration_seconds",
		Help:    "Duration of a backend's Enumerate call.",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend"})

	capabilityRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scanbridge_capability_requests_total",
		Help: "Capability lookups by backend and outcome (ok, not_found, error).",
	}, []string{"backend", "outcome"})

	scanStarts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scanbridge_scan_starts_total",
		Help: "Scan start attempts by backend and outcome (ok, not_found, error).",
	}, []string{"backend", "outcome"})

	duplicateDeviceIDs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scanbridge_duplicate_device_ids_total",
		Help: "Count of device IDs seen from more than one backend during ListDevices.",
	})
)
