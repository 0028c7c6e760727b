package analyzer

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenizer normalizes text into lowercase terms for indexing and matching.
// It handles both Latin and Arabic script, including Arabic punctuation.
type Tokenizer struct {
	minTokenLen int
}

// NewTokenizer creates a new Tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{minTokenLen: 2}
}

// separators beyond whitespace. The Arabic comma, semicolon, question mark and
// tatweel must be listed explicitly so mixed-script documents split cleanly.
var separators = map[rune]struct{}{
	'.': {}, ',': {}, ';': {}, ':': {}, '!': {}, '?': {},
	'(': {}, ')': {}, '[': {}, ']': {}, '{': {}, '}': {},
	'"': {}, '\'': {}, '`': {}, '«': {}, '»': {},
	'/': {}, '\\': {}, '|': {}, '<': {}, '>': {},
	'—': {}, '–': {}, '…': {}, '•': {}, '*': {}, '#': {}, '=': {}, '+': {},
	'،': {}, '؛': {}, '؟': {}, '۔': {}, 'ـ': {},
}

func isSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	_, ok := separators[r]
	return ok
}

// Tokenize splits text into lowercase tokens in document order, keeping
// duplicates so callers can count term frequencies. Tokens shorter than two
// runes or without any letter or digit are dropped.
func (t *Tokenizer) Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), isSeparator)

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < t.minTokenLen {
			continue
		}
		if !hasWordRune(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Terms returns the distinct tokens of text ordered by descending length,
// longest first, so more specific terms are matched before shorter ones that
// may be their substrings.
func (t *Tokenizer) Terms(text string) []string {
	tokens := t.Tokenize(text)

	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		terms = append(terms, tok)
	}

	sort.SliceStable(terms, func(i, j int) bool {
		return len(terms[i]) > len(terms[j])
	})
	return terms
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
