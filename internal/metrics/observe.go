package metrics

import "time"

// ObserveRebuild times a corpus mutation and counts its outcome.
func ObserveRebuild(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	IndexRebuildDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	status := "ok"
	if err != nil {
		status = "error"
	}
	IndexRebuildsTotal.WithLabelValues(operation, status).Inc()
	return err
}

// SetIndexSize publishes the current corpus size.
func SetIndexSize(documents, vocabulary int) {
	IndexDocuments.Set(float64(documents))
	IndexVocabularySize.Set(float64(vocabulary))
}

// ObserveQuery records a query outcome.
func ObserveQuery(results int, err error) {
	switch {
	case err != nil:
		QueriesTotal.WithLabelValues("error").Inc()
		return
	case results == 0:
		QueriesTotal.WithLabelValues("empty").Inc()
	default:
		QueriesTotal.WithLabelValues("hit").Inc()
	}
	QueryResults.Observe(float64(results))
}
