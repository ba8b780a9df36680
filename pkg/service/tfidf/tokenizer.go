package tfidf

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Tokenizer splits text into terms
type Tokenizer interface {
	Tokenize(text string) []string
}

// DefaultMinTokenLength drops single-character tokens such as "I" or "a"
const DefaultMinTokenLength = 2

// WordTokenizer lowercases NFKC-normalized text and splits it into runs of word characters
// (letters, marks, digits and underscore). Runs shorter than MinLength runes are dropped.
type WordTokenizer struct {
	MinLength int
}

// NewWordTokenizer returns a WordTokenizer with DefaultMinTokenLength
func NewWordTokenizer() *WordTokenizer {
	return &WordTokenizer{MinLength: DefaultMinTokenLength}
}

func (t *WordTokenizer) Tokenize(text string) []string {
	normalized := strings.ToLower(norm.NFKC.String(text))

	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return !isWordRune(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) < t.MinLength {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
