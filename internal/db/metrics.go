package db

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	migrationsApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tipjar_db_migrations_applied_total",
			Help: "Total number of schema migrations applied",
		},
	)

	integrityFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tipjar_db_integrity_failures_total",
			Help: "Total number of failed database integrity checks",
		},
	)

	dbSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tipjar_db_size_bytes",
			Help: "Database file size in bytes",
		},
		[]string{"type"},
	)
)

func MigrationsAppliedAdd(n int) {
	migrationsApplied.Add(float64(n))
}

func IntegrityFailureInc() {
	integrityFailures.Inc()
}

func DBSizeLog(sizeBytes int64) {
	dbSize.WithLabelValues("total").Set(float64(sizeBytes))
}
