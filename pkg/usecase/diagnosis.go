package usecase

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/asclepius/pkg/domain/model"
	"github.com/secmon-lab/asclepius/pkg/service/tfidf"
)

// DiagnosisUseCase matches symptom descriptions against a fixed case set.
// The case set and its index are built together and never change afterwards, so one
// instance can serve any number of concurrent callers.
type DiagnosisUseCase struct {
	cases model.CaseSet
	index *tfidf.Index
}

// NewDiagnosisUseCase validates cases and fits the term-weighted index over their symptoms
func NewDiagnosisUseCase(cases model.CaseSet, opts ...tfidf.Option) (*DiagnosisUseCase, error) {
	if err := cases.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid case set")
	}

	owned := slices.Clone(cases)
	index, err := tfidf.NewIndex(owned.Symptoms(), opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build symptom index", goerr.V(CaseCountKey, len(owned)))
	}

	return &DiagnosisUseCase{
		cases: owned,
		index: index,
	}, nil
}

// Match returns the most similar case with its confidence and match decision
func (uc *DiagnosisUseCase) Match(input string) *model.Diagnosis {
	best, similarity := uc.index.Best(input)
	c := uc.cases[best]
	return model.NewDiagnosis(&c, similarity)
}

// Diagnose returns the user-facing diagnosis or decline message for input
func (uc *DiagnosisUseCase) Diagnose(input string) string {
	return uc.Match(input).Message()
}

// CaseCount returns the number of reference cases
func (uc *DiagnosisUseCase) CaseCount() int {
	return len(uc.cases)
}

// VocabularySize returns the number of distinct terms learned from the case set
func (uc *DiagnosisUseCase) VocabularySize() int {
	return len(uc.index.Vectorizer().Vocabulary())
}
