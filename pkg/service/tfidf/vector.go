package tfidf

import "math"

// entry is one non-zero component of a sparse vector
type entry struct {
	index  int
	weight float64
}

// Vector is a sparse vector whose entries are ordered by term index.
// The fixed order keeps dot products bit-for-bit reproducible.
type Vector struct {
	entries []entry
}

// Len returns the number of non-zero components
func (v Vector) Len() int {
	return len(v.entries)
}

// IsZero reports whether the vector has no non-zero components
func (v Vector) IsZero() bool {
	return len(v.entries) == 0
}

// Weight returns the component for the given term index
func (v Vector) Weight(index int) float64 {
	lo, hi := 0, len(v.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case v.entries[mid].index == index:
			return v.entries[mid].weight
		case v.entries[mid].index < index:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0
}

// Norm returns the Euclidean length
func (v Vector) Norm() float64 {
	var sum float64
	for _, e := range v.entries {
		sum += e.weight * e.weight
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of two sparse vectors
func (v Vector) Dot(other Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.entries) && j < len(other.entries) {
		a, b := v.entries[i], other.entries[j]
		switch {
		case a.index == b.index:
			sum += a.weight * b.weight
			i++
			j++
		case a.index < b.index:
			i++
		default:
			j++
		}
	}
	return sum
}

// normalized returns a unit-length copy. The zero vector stays zero.
func (v Vector) normalized() Vector {
	n := v.Norm()
	if n == 0 {
		return Vector{}
	}
	out := make([]entry, len(v.entries))
	for i, e := range v.entries {
		out[i] = entry{index: e.index, weight: e.weight / n}
	}
	return Vector{entries: out}
}

// CosineSimilarity of two vectors. Returns 0 when either is the zero vector.
func CosineSimilarity(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}
