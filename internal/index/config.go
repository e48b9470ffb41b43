package index

import (
	"fmt"

	"github.com/kailas-cloud/tenantdex/internal/domain/search/request"
)

// DefaultMaxFeatures caps the vocabulary size.
const DefaultMaxFeatures = 5000

// Config tunes tokenization and corpus limits.
type Config struct {
	MaxFeatures    int
	MinTokenLength int
	StopWords      string
	DefaultTopK    int
	// MaxDocuments limits the corpus size; 0 disables the limit.
	MaxDocuments int
}

// DefaultConfig returns the reference settings.
func DefaultConfig() Config {
	return Config{
		MaxFeatures:    DefaultMaxFeatures,
		MinTokenLength: 1,
		StopWords:      StopWordsEnglish,
		DefaultTopK:    request.DefaultTopK,
	}
}

func (c Config) tokenizer() (*Tokenizer, error) {
	stop, ok := StopWords(c.StopWords)
	if !ok {
		return nil, fmt.Errorf("unknown stop word list %q", c.StopWords)
	}
	return NewTokenizer(c.MinTokenLength, stop), nil
}
