package tfidf

import (
	"math"
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrEmptyCorpus     = goerr.New("corpus has no documents")
	ErrEmptyVocabulary = goerr.New("corpus produced an empty vocabulary")
)

// Vectorizer projects text into a term-weighted vector space fitted on a fixed corpus.
// A fitted Vectorizer is immutable and safe for concurrent use.
type Vectorizer struct {
	tokenizer   Tokenizer
	sublinearTF bool

	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// Option configures a Vectorizer before fitting
type Option func(*Vectorizer)

// WithTokenizer replaces the default WordTokenizer
func WithTokenizer(t Tokenizer) Option {
	return func(v *Vectorizer) {
		v.tokenizer = t
	}
}

// WithSublinearTF weights term counts as 1+ln(tf) instead of the raw count
func WithSublinearTF(enabled bool) Option {
	return func(v *Vectorizer) {
		v.sublinearTF = enabled
	}
}

// Fit learns the vocabulary and smoothed idf weights from docs:
//
//	idf(t) = ln((1+n) / (1+df(t))) + 1
func Fit(docs []string, opts ...Option) (*Vectorizer, error) {
	v := &Vectorizer{
		tokenizer: NewWordTokenizer(),
	}
	for _, opt := range opts {
		opt(v)
	}

	if len(docs) == 0 {
		return nil, goerr.Wrap(ErrEmptyCorpus, "failed to fit vectorizer")
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, token := range v.tokenizer.Tokenize(doc) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			df[token]++
		}
	}
	if len(df) == 0 {
		return nil, goerr.Wrap(ErrEmptyVocabulary, "failed to fit vectorizer", goerr.V("documents", len(docs)))
	}

	v.terms = make([]string, 0, len(df))
	for term := range df {
		v.terms = append(v.terms, term)
	}
	slices.Sort(v.terms)

	n := float64(len(docs))
	v.vocabulary = make(map[string]int, len(v.terms))
	v.idf = make([]float64, len(v.terms))
	for i, term := range v.terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return v, nil
}

// Transform returns the unit-length weighted vector of text. Terms outside the fitted
// vocabulary are ignored, so unknown or empty text yields the zero vector.
func (v *Vectorizer) Transform(text string) Vector {
	counts := make(map[int]int)
	for _, token := range v.tokenizer.Tokenize(text) {
		if idx, ok := v.vocabulary[token]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}

	entries := make([]entry, 0, len(counts))
	for idx, count := range counts {
		tf := float64(count)
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		entries = append(entries, entry{index: idx, weight: tf * v.idf[idx]})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return a.index - b.index
	})

	return Vector{entries: entries}.normalized()
}

// Vocabulary returns the fitted terms in index order
func (v *Vectorizer) Vocabulary() []string {
	return slices.Clone(v.terms)
}

// IDF returns the fitted idf weight of a term
func (v *Vectorizer) IDF(term string) (float64, bool) {
	idx, ok := v.vocabulary[term]
	if !ok {
		return 0, false
	}
	return v.idf[idx], true
}
