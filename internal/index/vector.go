package index

import (
	"math"
	"sort"
)

// Vector is a sparse TF-IDF vector with sorted positions.
type Vector struct {
	positions []int
	weights   []float64
	norm      float64
}

// Vectorize weights raw term counts by IDF. Out-of-vocabulary tokens are ignored.
func (v *Vocabulary) Vectorize(tokens []string) Vector {
	if v.Size() == 0 || len(tokens) == 0 {
		return Vector{}
	}
	counts := make(map[int]int)
	for _, tok := range tokens {
		if p, ok := v.positions[tok]; ok {
			counts[p]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}

	vec := Vector{
		positions: make([]int, 0, len(counts)),
		weights:   make([]float64, len(counts)),
	}
	for p := range counts {
		vec.positions = append(vec.positions, p)
	}
	sort.Ints(vec.positions)

	var sq float64
	for i, p := range vec.positions {
		w := float64(counts[p]) * v.idf[p]
		vec.weights[i] = w
		sq += w * w
	}
	vec.norm = math.Sqrt(sq)
	return vec
}

// Len returns the number of non-zero entries.
func (x Vector) Len() int { return len(x.positions) }

// Norm returns the L2 norm.
func (x Vector) Norm() float64 { return x.norm }

// Weight returns the weight at a position, 0 if absent.
func (x Vector) Weight(pos int) float64 {
	i := sort.SearchInts(x.positions, pos)
	if i < len(x.positions) && x.positions[i] == pos {
		return x.weights[i]
	}
	return 0
}

// Dot returns the inner product of two sparse vectors.
func (x Vector) Dot(y Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(x.positions) && j < len(y.positions) {
		switch {
		case x.positions[i] == y.positions[j]:
			sum += x.weights[i] * y.weights[j]
			i++
			j++
		case x.positions[i] < y.positions[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Cosine returns the cosine similarity clamped to [0, 1].
// Zero vectors have similarity 0 with everything.
func Cosine(a, b Vector) float64 {
	if a.norm == 0 || b.norm == 0 {
		return 0
	}
	s := a.Dot(b) / (a.norm * b.norm)
	switch {
	case math.IsNaN(s) || s < 0:
		return 0
	case s > 1:
		return 1
	}
	return s
}
