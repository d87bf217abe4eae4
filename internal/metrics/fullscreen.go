// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus collectors for the fullscreen daemon.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks fullscreen request attempts by mode and result.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fsd_fullscreen_requests_total",
		Help: "Total number of fullscreen request attempts by mode and result",
	}, []string{"mode", "result"})

	// ExitsTotal tracks fullscreen exit attempts by mode.
	ExitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fsd_fullscreen_exits_total",
		Help: "Total number of fullscreen exit attempts by mode",
	}, []string{"mode"})

	// TogglesTotal tracks toggles by mode and the action they resolved to.
	TogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fsd_fullscreen_toggles_total",
		Help: "Total number of toggle operations by mode and resolved action",
	}, []string{"mode", "action"})

	// ChangeEventsTotal counts fullscreen change notifications from the host.
	ChangeEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fsd_change_events_total",
		Help: "Total number of fullscreen change events observed",
	})

	// ErrorEventsTotal counts fullscreen error notifications from the host.
	ErrorEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fsd_error_events_total",
		Help: "Total number of fullscreen error events observed",
	})

	// ResolverVendorInfo marks which API variant resolution selected.
	ResolverVendorInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fsd_resolver_vendor_info",
		Help: "Set to 1 for the exit-method name of the resolved API variant",
	}, []string{"vendor"})
)

// IncRequest records a fullscreen request attempt outcome.
func IncRequest(mode string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	RequestsTotal.WithLabelValues(mode, result).Inc()
}

// IncExit records a fullscreen exit attempt.
func IncExit(mode string) {
	ExitsTotal.WithLabelValues(mode).Inc()
}

// IncToggle records a toggle and which action it resolved to.
func IncToggle(mode, action string) {
	TogglesTotal.WithLabelValues(mode, action).Inc()
}

// SetResolvedVendor marks the detected variant, keyed by its exit-method
// name; "none" means the legacy path is active.
func SetResolvedVendor(vendor string) {
	if vendor == "" {
		vendor = "none"
	}
	ResolverVendorInfo.WithLabelValues(vendor).Set(1)
}
