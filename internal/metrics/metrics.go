package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ledger metrics
	dbQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tipjar_db_queries_total",
			Help: "Total number of ledger queries",
		},
		[]string{"operation"},
	)

	dbQueryTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tipjar_db_query_duration_seconds",
			Help:    "Duration of ledger queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	dbErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tipjar_db_errors_total",
			Help: "Total number of ledger errors",
		},
		[]string{"operation"},
	)

	ledgerResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tipjar_ledger_resets_total",
			Help: "Total number of times an unreadable ledger was moved aside and recreated",
		},
	)

	// Indexing metrics
	lastIndexedBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tipjar_last_indexed_block",
			Help: "The last block number whose tips are durably stored",
		},
	)

	chainHead = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tipjar_chain_head_block",
			Help: "The latest block height reported by the RPC endpoint",
		},
	)

	blocksProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tipjar_blocks_processed_total",
			Help: "Total number of blocks scanned for tip events",
		},
	)

	tipsIndexed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tipjar_tips_indexed_total",
			Help: "Total number of new tips written to the ledger",
		},
	)

	tipsDuplicate = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tipjar_tips_duplicate_total",
			Help: "Total number of tips skipped because their id was already stored",
		},
	)

	orphanMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tipjar_orphan_messages_total",
			Help: "Total number of tip messages without a matching tip in the same range",
		},
	)

	malformedLogs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tipjar_malformed_logs_total",
			Help: "Total number of logs that could not be decoded",
		},
		[]string{"event"},
	)

	rangeProcessingTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tipjar_range_processing_duration_seconds",
			Help:    "Time taken to fetch, decode and store one block range",
			Buckets: prometheus.DefBuckets,
		},
	)

	passFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tipjar_pass_failures_total",
			Help: "Total number of polling passes that failed and were retried",
		},
	)

	// System metrics
	uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tipjar_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	componentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tipjar_component_health",
			Help: "Component health status (1=healthy, 0=unhealthy)",
		},
		[]string{"component"},
	)

	goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tipjar_goroutines",
			Help: "Number of active goroutines",
		},
	)

	memoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tipjar_memory_usage_bytes",
			Help: "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

func DBQueryInc(operation string) {
	dbQueries.WithLabelValues(operation).Inc()
}

func DBQueryDuration(operation string, duration time.Duration) {
	dbQueryTime.WithLabelValues(operation).Observe(duration.Seconds())
}

func DBErrorsInc(operation string) {
	dbErrors.WithLabelValues(operation).Inc()
}

func LedgerResetInc() {
	ledgerResets.Inc()
}

func LastIndexedBlockSet(blockNum uint64) {
	lastIndexedBlock.Set(float64(blockNum))
}

func ChainHeadSet(blockNum uint64) {
	chainHead.Set(float64(blockNum))
}

func BlocksProcessedAdd(count uint64) {
	blocksProcessed.Add(float64(count))
}

func TipsIndexedAdd(count int) {
	tipsIndexed.Add(float64(count))
}

func TipsDuplicateAdd(count int) {
	tipsDuplicate.Add(float64(count))
}

func OrphanMessagesAdd(count int) {
	orphanMessages.Add(float64(count))
}

func MalformedLogInc(event string) {
	malformedLogs.WithLabelValues(event).Inc()
}

func RangeProcessingTimeLog(duration time.Duration) {
	rangeProcessingTime.Observe(duration.Seconds())
}

func PassFailureInc() {
	passFailures.Inc()
}

func ComponentHealthSet(component string, healthy bool) {
	boolAsFloat := float64(1)
	if !healthy {
		boolAsFloat = 0
	}

	componentHealth.WithLabelValues(component).Set(boolAsFloat)
}

// UpdateSystemMetrics updates runtime system metrics.
// This should be called periodically (e.g., every 15 seconds).
func UpdateSystemMetrics() {
	uptime.Set(time.Since(startTime).Seconds())

	goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	memoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	memoryUsage.WithLabelValues("total_alloc").Set(float64(m.TotalAlloc))
	memoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	memoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
