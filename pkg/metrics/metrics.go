// Package metrics exposes Prometheus metrics of the crowd estimation
// server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// UnknownLocation is the label shared by every location outside the
// baseline, so arbitrary client input cannot create new series.
const UnknownLocation = "unknown"

var (
	// RegistrationsTotal counts queue joins by location.
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qsmart_registrations_total",
			Help: "Total number of queue registrations",
		},
		[]string{"location"},
	)

	// StatusQueriesTotal counts status queries by location.
	StatusQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qsmart_status_queries_total",
			Help: "Total number of location status queries",
		},
		[]string{"location"},
	)

	// ExpectedCrowd is the last expected crowd computed per location.
	ExpectedCrowd = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "qsmart_expected_crowd",
			Help: "Expected crowd of a location at its last status query",
		},
		[]string{"location"},
	)

	// ExpiredRegistrationsTotal counts registrations removed by the sweeper.
	ExpiredRegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qsmart_expired_registrations_total",
			Help: "Total number of registrations removed after the retention window",
		},
	)

	// StorageErrorsTotal counts failed registration store operations.
	StorageErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qsmart_storage_errors_total",
			Help: "Total number of failed registration store operations",
		},
		[]string{"operation"},
	)

	// StatusSubscribers is the number of open websocket status feeds.
	StatusSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "qsmart_status_subscribers",
			Help: "Number of connected websocket status subscribers",
		},
	)
)

func RecordRegistration(location string) {
	RegistrationsTotal.WithLabelValues(location).Inc()
}

func RecordStatus(location string, expectedCrowd int) {
	StatusQueriesTotal.WithLabelValues(location).Inc()
	ExpectedCrowd.WithLabelValues(location).Set(float64(expectedCrowd))
}

func RecordExpired(removed int64) {
	if removed > 0 {
		ExpiredRegistrationsTotal.Add(float64(removed))
	}
}

func RecordStorageError(operation string) {
	StorageErrorsTotal.WithLabelValues(operation).Inc()
}
