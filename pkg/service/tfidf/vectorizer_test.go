package tfidf_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/asclepius/pkg/service/tfidf"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestFit(t *testing.T) {
	t.Run("vocabulary is sorted", func(t *testing.T) {
		v, err := tfidf.Fit([]string{"fever rash", "fever cough"})
		gt.NoError(t, err).Required()
		gt.Value(t, v.Vocabulary()).Equal([]string{"cough", "fever", "rash"})
	})

	t.Run("smoothed idf", func(t *testing.T) {
		v, err := tfidf.Fit([]string{"fever cough", "fever rash"})
		gt.NoError(t, err).Required()

		idf, ok := v.IDF("fever")
		gt.Bool(t, ok).True()
		gt.Bool(t, approx(idf, 1)).True()

		idf, ok = v.IDF("cough")
		gt.Bool(t, ok).True()
		gt.Bool(t, approx(idf, math.Log(1.5)+1)).True()

		_, ok = v.IDF("headache")
		gt.Bool(t, ok).False()
	})

	t.Run("empty corpus", func(t *testing.T) {
		_, err := tfidf.Fit(nil)
		gt.Bool(t, errors.Is(err, tfidf.ErrEmptyCorpus)).True()
	})

	t.Run("corpus without tokens", func(t *testing.T) {
		_, err := tfidf.Fit([]string{"", "a b", "!!"})
		gt.Bool(t, errors.Is(err, tfidf.ErrEmptyVocabulary)).True()
	})

	t.Run("vocabulary copy is detached", func(t *testing.T) {
		v, err := tfidf.Fit([]string{"fever"})
		gt.NoError(t, err).Required()
		vocab := v.Vocabulary()
		vocab[0] = "mutated"
		gt.Value(t, v.Vocabulary()).Equal([]string{"fever"})
	})
}

func TestVectorizer_Transform(t *testing.T) {
	v, err := tfidf.Fit([]string{"fever cough", "fever rash"})
	gt.NoError(t, err).Required()

	t.Run("vectors are unit length", func(t *testing.T) {
		for _, text := range []string{"fever", "fever cough", "rash rash cough fever"} {
			gt.Bool(t, approx(v.Transform(text).Norm(), 1)).True()
		}
	})

	t.Run("weights follow tf times idf", func(t *testing.T) {
		vec := v.Transform("cough fever")
		idfCough := math.Log(1.5) + 1
		norm := math.Sqrt(1 + idfCough*idfCough)

		gt.Bool(t, approx(vec.Weight(0), idfCough/norm)).True()
		gt.Bool(t, approx(vec.Weight(1), 1/norm)).True()
		gt.Value(t, vec.Weight(2)).Equal(0.0)
	})

	t.Run("unknown terms are ignored", func(t *testing.T) {
		a := v.Transform("fever cough")
		b := v.Transform("fever cough headache nausea")
		gt.Bool(t, approx(tfidf.CosineSimilarity(a, b), 1)).True()
	})

	t.Run("out of vocabulary text is the zero vector", func(t *testing.T) {
		gt.Bool(t, v.Transform("").IsZero()).True()
		gt.Bool(t, v.Transform("ωψξ ☃☃ 🙂").IsZero()).True()
		gt.Value(t, v.Transform("headache").Norm()).Equal(0.0)
	})

	t.Run("raw counts by default", func(t *testing.T) {
		vec := v.Transform("cough cough fever")
		idfCough := math.Log(1.5) + 1
		ratio := vec.Weight(0) / vec.Weight(1)
		gt.Bool(t, approx(ratio, 2*idfCough)).True()
	})
}

func TestWithSublinearTF(t *testing.T) {
	v, err := tfidf.Fit([]string{"fever cough", "fever rash"}, tfidf.WithSublinearTF(true))
	gt.NoError(t, err).Required()

	vec := v.Transform("cough cough fever")
	idfCough := math.Log(1.5) + 1
	ratio := vec.Weight(0) / vec.Weight(1)
	gt.Bool(t, approx(ratio, (1+math.Log(2))*idfCough)).True()
}

type upperTokenizer struct{}

func (upperTokenizer) Tokenize(text string) []string {
	return strings.Fields(strings.ToUpper(text))
}

func TestWithTokenizer(t *testing.T) {
	v, err := tfidf.Fit([]string{"a b"}, tfidf.WithTokenizer(upperTokenizer{}))
	gt.NoError(t, err).Required()
	gt.Value(t, v.Vocabulary()).Equal([]string{"A", "B"})
}

func TestCosineSimilarity(t *testing.T) {
	v, err := tfidf.Fit([]string{"fever cough", "fever rash"})
	gt.NoError(t, err).Required()

	a := v.Transform("fever cough")
	gt.Bool(t, approx(tfidf.CosineSimilarity(a, a), 1)).True()
	gt.Value(t, tfidf.CosineSimilarity(a, tfidf.Vector{})).Equal(0.0)
	gt.Value(t, tfidf.CosineSimilarity(v.Transform("cough"), v.Transform("rash"))).Equal(0.0)
}
