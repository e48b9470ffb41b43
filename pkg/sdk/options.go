package tenantdex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	maxFeatures    int
	minTokenLength int
	stopWords      string
	maxDocuments   int
	defaultTopK    int
	folderGlob     string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithMaxFeatures caps the vocabulary size. 0 means unbounded.
// Default: 5000.
func WithMaxFeatures(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxFeatures = n
	})
}

// WithMinTokenLength drops tokens shorter than n characters. Default: 1.
func WithMinTokenLength(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.minTokenLength = n
	})
}

// WithStopWords selects the stop word list: "english" (default) or "none".
func WithStopWords(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.stopWords = name
	})
}

// WithMaxDocuments limits the corpus size. 0 means unlimited (default).
func WithMaxDocuments(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxDocuments = n
	})
}

// WithDefaultTopK sets the result count used when Query gets topK <= 0.
// Default: 3.
func WithDefaultTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultTopK = k
	})
}

// WithFolderGlob sets the file pattern used by LoadFolder. Default: "*.md".
func WithFolderGlob(glob string) Option {
	return optionFunc(func(c *clientConfig) {
		c.folderGlob = glob
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
