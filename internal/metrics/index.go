package metrics

import "github.com/prometheus/client_golang/prometheus"

// Index Prometheus metrics.
var (
	IndexRebuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tenantdex",
			Name:      "index_rebuilds_total",
			Help:      "Total number of corpus rebuilds",
		},
		[]string{"operation", "status"},
	)

	IndexRebuildDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tenantdex",
			Name:      "index_rebuild_duration_seconds",
			Help:      "Corpus rebuild duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation"},
	)

	IndexDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tenantdex",
			Name:      "index_documents",
			Help:      "Number of indexed documents",
		},
	)

	IndexVocabularySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tenantdex",
			Name:      "index_vocabulary_size",
			Help:      "Number of terms in the vocabulary",
		},
	)

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tenantdex",
			Name:      "queries_total",
			Help:      "Total number of queries",
		},
		[]string{"status"}, // "hit" / "empty" / "error"
	)

	QueryResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tenantdex",
			Name:      "query_results",
			Help:      "Number of results returned per query",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 25, 50},
		},
	)

	IngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tenantdex",
			Name:      "ingested_documents_total",
			Help:      "Total ingested documents by source and content kind",
		},
		[]string{"source", "kind"},
	)

	ArchiveErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tenantdex",
			Name:      "archive_errors_total",
			Help:      "Total upload archive failures",
		},
		[]string{"operation"},
	)
)

var indexMetricsRegistered bool

// RegisterIndexMetrics registers Prometheus index metrics. Must be called once from main.
func RegisterIndexMetrics() {
	if indexMetricsRegistered {
		return
	}
	prometheus.MustRegister(IndexRebuildsTotal)
	prometheus.MustRegister(IndexRebuildDuration)
	prometheus.MustRegister(IndexDocuments)
	prometheus.MustRegister(IndexVocabularySize)
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(QueryResults)
	prometheus.MustRegister(IngestedTotal)
	prometheus.MustRegister(ArchiveErrorsTotal)
	indexMetricsRegistered = true
}
