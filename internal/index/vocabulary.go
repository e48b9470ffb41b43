package index

import (
	"math"
	"sort"
)

// Vocabulary maps terms to stable vector positions and IDF weights.
type Vocabulary struct {
	terms     []string
	positions map[string]int
	df        []int
	idf       []float64
	docs      int
}

type termStat struct {
	term  string
	df    int
	first int
}

// BuildVocabulary computes the vocabulary of a tokenized corpus.
// Terms are ranked by document frequency (ties by first appearance) and
// only the top maxFeatures survive; maxFeatures <= 0 keeps every term.
// IDF is smoothed: ln((1+N)/(1+df)) + 1.
func BuildVocabulary(tokenized [][]string, maxFeatures int) *Vocabulary {
	stats := make(map[string]*termStat)
	order := 0
	for _, tokens := range tokenized {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			st, ok := stats[tok]
			if !ok {
				st = &termStat{term: tok, first: order}
				stats[tok] = st
				order++
			}
			st.df++
		}
	}

	ranked := make([]*termStat, 0, len(stats))
	for _, st := range stats {
		ranked = append(ranked, st)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].df != ranked[j].df {
			return ranked[i].df > ranked[j].df
		}
		return ranked[i].first < ranked[j].first
	})
	if maxFeatures > 0 && len(ranked) > maxFeatures {
		ranked = ranked[:maxFeatures]
	}

	n := len(tokenized)
	v := &Vocabulary{
		terms:     make([]string, len(ranked)),
		positions: make(map[string]int, len(ranked)),
		df:        make([]int, len(ranked)),
		idf:       make([]float64, len(ranked)),
		docs:      n,
	}
	for i, st := range ranked {
		v.terms[i] = st.term
		v.positions[st.term] = i
		v.df[i] = st.df
		v.idf[i] = math.Log(float64(1+n)/float64(1+st.df)) + 1
	}
	return v
}

// Size returns the number of terms.
func (v *Vocabulary) Size() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Position returns the vector position of a term.
func (v *Vocabulary) Position(term string) (int, bool) {
	if v == nil {
		return 0, false
	}
	p, ok := v.positions[term]
	return p, ok
}

// Term returns the term at a position.
func (v *Vocabulary) Term(pos int) string { return v.terms[pos] }

// IDF returns the IDF weight of a term; 0 for out-of-vocabulary terms.
func (v *Vocabulary) IDF(term string) float64 {
	p, ok := v.Position(term)
	if !ok {
		return 0
	}
	return v.idf[p]
}

// DocFreq returns the document frequency of a term.
func (v *Vocabulary) DocFreq(term string) int {
	p, ok := v.Position(term)
	if !ok {
		return 0
	}
	return v.df[p]
}
