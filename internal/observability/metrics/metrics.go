package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "cim_mapping_"

	resultSuccess = "success"
	resultError   = "error"

	lookupHit  = "hit"
	lookupMiss = "miss"
)

var (
	registerOnce sync.Once

	queryTotal   *prometheus.CounterVec
	queryLatency *prometheus.HistogramVec
	recordsTotal *prometheus.CounterVec

	connectivityNodeLookups *prometheus.CounterVec

	runTotal   *prometheus.CounterVec
	runLatency *prometheus.HistogramVec

	loadTriplesTotal prometheus.Counter

	exportTotal *prometheus.CounterVec
)

// Init registers mapping metrics and, when db is set, a gauge over the
// triple table.
func Init(db *sql.DB, table string, logger *log.Logger) {
	registerOnce.Do(func() {
		queryTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "queries_total",
				Help: "Total source model queries by entity kind and result",
			},
			[]string{"kind", "result"},
		)
		queryLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "query_latency_seconds",
				Help:    "Source model query latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "result"},
		)
		recordsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "records_total",
				Help: "Total property records returned by entity kind",
			},
			[]string{"kind"},
		)

		connectivityNodeLookups = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "connectivity_node_lookups_total",
				Help: "Connectivity node cache lookups by result",
			},
			[]string{"result"},
		)

		runTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "runs_total",
				Help: "Total mapping runs by result",
			},
			[]string{"result"},
		)
		runLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "run_latency_seconds",
				Help:    "Mapping run latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		loadTriplesTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "loaded_triples_total",
				Help: "Total triples loaded into the store",
			},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total document exports by format and result",
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			queryTotal,
			queryLatency,
			recordsTotal,
			connectivityNodeLookups,
			runTotal,
			runLatency,
			loadTriplesTotal,
			exportTotal,
		)

		if db != nil && table != "" {
			registerDBMetrics(db, table, logger)
		}
	})
}

// ObserveQuery records one source model query.
func ObserveQuery(kind, result string, records int, duration time.Duration) {
	if kind == "" {
		kind = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if queryTotal != nil {
		queryTotal.WithLabelValues(kind, result).Inc()
	}
	if queryLatency != nil {
		queryLatency.WithLabelValues(kind, result).Observe(duration.Seconds())
	}
	if recordsTotal != nil && records > 0 {
		recordsTotal.WithLabelValues(kind).Add(float64(records))
	}
}

// IncConnectivityNodeLookup counts a cache lookup.
func IncConnectivityNodeLookup(hit bool) {
	if connectivityNodeLookups == nil {
		return
	}
	if hit {
		connectivityNodeLookups.WithLabelValues(lookupHit).Inc()
		return
	}
	connectivityNodeLookups.WithLabelValues(lookupMiss).Inc()
}

// ObserveRun records a mapping run.
func ObserveRun(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if runTotal != nil {
		runTotal.WithLabelValues(result).Inc()
	}
	if runLatency != nil {
		runLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// AddLoadedTriples increments the loaded triple counter by count.
func AddLoadedTriples(count int) {
	if count <= 0 {
		return
	}
	if loadTriplesTotal != nil {
		loadTriplesTotal.Add(float64(count))
	}
}

// IncExport counts a document export.
func IncExport(format, result string) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
}

// WriteTextfile dumps the default registry in the text exposition format,
// for collection by a node exporter textfile collector after a batch run.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
