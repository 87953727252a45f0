// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RecordMutations counts successful record mutations by operation.
var RecordMutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "suraksha_record_mutations_total",
	Help: "Successful service record mutations by operation (create, update, delete)",
}, []string{"op"})

// RecordsHeld tracks the number of records currently held by the store.
var RecordsHeld = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "suraksha_records",
	Help: "Number of service records held in memory",
})

// PersistenceFailures counts snapshot reads or writes that failed.
var PersistenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "suraksha_persistence_failures_total",
	Help: "Failed snapshot operations by kind (load, decode, write)",
}, []string{"kind"})

// NotificationsSent counts notification deliveries by channel and outcome.
var NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "suraksha_notifications_total",
	Help: "Mutation notifications by channel and outcome",
}, []string{"channel", "outcome"})

// ReportsSent counts scheduled or manual business report runs by outcome.
var ReportsSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "suraksha_reports_total",
	Help: "Business report runs by outcome",
}, []string{"outcome"})
