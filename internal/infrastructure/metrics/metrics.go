package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Operation metrics
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ncd_ifconfig_operations_total",
			Help: "Total number of interface configuration operations",
		},
		[]string{"operation", "status"}, // status: success, failed
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ncd_ifconfig_operation_duration_seconds",
			Help:    "Time spent in each interface configuration operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ncd_ifconfig_errors_total",
			Help: "Total number of errors encountered",
		},
		[]string{"error_type"}, // validation, not_found, system, network, timeout
	)

	// Resolver metrics
	DNSServers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ncd_ifconfig_dns_servers",
			Help: "Number of nameservers in the last resolver file written",
		},
	)

	ResolverBackups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ncd_ifconfig_resolver_backups_total",
			Help: "Total number of resolver file backups attempted",
		},
		[]string{"status"}, // created, skipped, failed
	)
)

// RecordOperation records the outcome and duration of one operation
func RecordOperation(operation string, status string, duration float64) {
	OperationDuration.WithLabelValues(operation).Observe(duration)
	OperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordError counts an error by type
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// SetDNSServers sets the number of configured nameservers
func SetDNSServers(count int) {
	DNSServers.Set(float64(count))
}

// RecordResolverBackup counts a backup attempt
func RecordResolverBackup(status string) {
	ResolverBackups.WithLabelValues(status).Inc()
}
