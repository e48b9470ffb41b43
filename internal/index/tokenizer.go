package index

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenizer splits text into lowercase word tokens.
type Tokenizer struct {
	minLen    int
	stopWords map[string]struct{}
}

// NewTokenizer creates a tokenizer. Tokens shorter than minLen runes and
// members of stopWords are dropped.
func NewTokenizer(minLen int, stopWords map[string]struct{}) *Tokenizer {
	if minLen < 1 {
		minLen = 1
	}
	return &Tokenizer{minLen: minLen, stopWords: stopWords}
}

// Tokenize returns the tokens of text in order of appearance.
func (t *Tokenizer) Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < t.minLen {
			continue
		}
		if _, stop := t.stopWords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}
