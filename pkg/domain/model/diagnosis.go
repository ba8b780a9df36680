package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ConfidenceThreshold is the lowest confidence reported as a match
const ConfidenceThreshold = 30.0

// DeclineMessage is returned when no case is similar enough
const DeclineMessage = "Sorry, I couldn’t identify the condition confidently. Please consult a doctor."

// Diagnosis is the outcome of matching one symptom description against the case set
type Diagnosis struct {
	// Case is the most similar case, even when the match is declined
	Case       *Case
	Similarity float64
	// Confidence is Similarity as a percentage rounded to two decimals
	Confidence float64
	Matched    bool
}

// NewDiagnosis derives confidence and the match decision from a similarity score
func NewDiagnosis(c *Case, similarity float64) *Diagnosis {
	confidence := RoundConfidence(similarity)
	return &Diagnosis{
		Case:       c,
		Similarity: similarity,
		Confidence: confidence,
		Matched:    confidence >= ConfidenceThreshold,
	}
}

// RoundConfidence converts a similarity in [0,1] to a percentage rounded to two decimals
func RoundConfidence(similarity float64) float64 {
	return RoundPercentage(similarity * 100)
}

// RoundPercentage rounds to two decimals, ties to even (12.125 -> 12.12, 12.375 -> 12.38)
func RoundPercentage(p float64) float64 {
	return math.RoundToEven(p*100) / 100
}

// Message renders the user-facing result
func (d *Diagnosis) Message() string {
	if !d.Matched || d.Case == nil {
		return DeclineMessage
	}
	return fmt.Sprintf("Possible diagnosis: %s (Confidence: %s%%)", d.Case.Diagnosis, FormatConfidence(d.Confidence))
}

// FormatConfidence prints the shortest decimal form, keeping at least one fractional digit
// (100 -> "100.0", 57.74 -> "57.74").
func FormatConfidence(confidence float64) string {
	s := strconv.FormatFloat(confidence, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
