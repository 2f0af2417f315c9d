package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GrantResolutions counts grant set resolutions by mode (wildcard|explicit).
	GrantResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgauthz_grant_resolutions_total",
			Help: "Total number of grant set resolutions",
		},
		[]string{"mode"},
	)

	// UnknownPermissionKeys counts permission keys referenced by roles but missing from the catalog.
	UnknownPermissionKeys = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orgauthz_unknown_permission_keys_total",
			Help: "Total number of unknown permission keys seen while resolving grants",
		},
	)

	// PermissionChecks counts gating checks and their outcome (allowed|denied|error).
	PermissionChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgauthz_permission_checks_total",
			Help: "Total number of permission checks",
		},
		[]string{"permission", "result"},
	)

	// MessagingDecisions counts messaging decisions by the rule that fired.
	MessagingDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgauthz_messaging_decisions_total",
			Help: "Total number of messaging authorization decisions",
		},
		[]string{"rule", "result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orgauthz_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Result maps a boolean decision to its metric label.
func Result(allowed bool) string {
	if allowed {
		return "allowed"
	}
	return "denied"
}
