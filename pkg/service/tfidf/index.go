package tfidf

// Index holds the fitted vectorizer and one unit vector per document, in input order
type Index struct {
	vectorizer *Vectorizer
	docs       []Vector
}

// NewIndex fits a Vectorizer on docs and vectorizes every document
func NewIndex(docs []string, opts ...Option) (*Index, error) {
	vectorizer, err := Fit(docs, opts...)
	if err != nil {
		return nil, err
	}

	vectors := make([]Vector, len(docs))
	for i, doc := range docs {
		vectors[i] = vectorizer.Transform(doc)
	}

	return &Index{
		vectorizer: vectorizer,
		docs:       vectors,
	}, nil
}

// Len returns the number of indexed documents
func (x *Index) Len() int {
	return len(x.docs)
}

// Vectorizer returns the fitted vectorizer
func (x *Index) Vectorizer() *Vectorizer {
	return x.vectorizer
}

// Similarities returns the cosine similarity between query and every document
func (x *Index) Similarities(query string) []float64 {
	q := x.vectorizer.Transform(query)
	scores := make([]float64, len(x.docs))
	if q.IsZero() {
		return scores
	}
	for i, doc := range x.docs {
		// both sides are unit length
		scores[i] = q.Dot(doc)
	}
	return scores
}

// Best returns the index and similarity of the most similar document.
// Ties resolve to the earliest document.
func (x *Index) Best(query string) (int, float64) {
	scores := x.Similarities(query)
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best, scores[best]
}
