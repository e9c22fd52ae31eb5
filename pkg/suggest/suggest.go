// Package suggest turns a partially typed query and a fixed corpus of hint
// strings into an ordered list of highlighted candidates.
package suggest

import (
	"github.com/samber/lo"
)

// Suggestion is a single candidate. HighlightIndexes holds the rune positions
// of Value that correspond to the characters the user typed, in increasing
// order.
type Suggestion struct {
	Value            string
	HighlightIndexes []int
}

// IsHighlighted reports whether the rune at index i is part of the match.
func (s Suggestion) IsHighlighted(i int) bool {
	return lo.Contains(s.HighlightIndexes, i)
}

// tokenDelimiters separate the words of a hint for the token pass.
var tokenDelimiters = []rune{' ', ';', '-', '_'}

// Engine computes suggestions against a corpus fixed at construction.
type Engine struct {
	corpus []string
}

// NewEngine copies the corpus so later changes by the caller have no effect.
func NewEngine(corpus []string) *Engine {
	return &Engine{corpus: append([]string(nil), corpus...)}
}

// Corpus returns a copy of the hints the engine matches against.
func (e *Engine) Corpus() []string {
	return append([]string(nil), e.corpus...)
}

// Compute returns the suggestions for query, see the package level Compute.
func (e *Engine) Compute(query string) *List {
	return Compute(e.corpus, query)
}

// Compute matches query against every corpus entry in three passes and
// concatenates the results: prefix matches, then token prefix matches, then
// subsequence matches. An entry can show up once per pass.
//
// A nil list is returned when the query is empty or no entry is long enough to
// contain it.
func Compute(corpus []string, query string) *List {
	q := []rune(query)
	if len(q) == 0 {
		return nil
	}
	if lo.EveryBy(corpus, func(item string) bool { return runeLen(item) < len(q) }) {
		return nil
	}

	var items []Suggestion
	for _, hint := range corpus {
		if s, ok := matchPrefix(hint, q); ok {
			items = append(items, s)
		}
	}
	for _, hint := range corpus {
		if s, ok := matchToken(hint, q); ok {
			items = append(items, s)
		}
	}
	for _, hint := range corpus {
		if s, ok := matchSubsequence(hint, q); ok {
			items = append(items, s)
		}
	}

	return &List{items: items}
}

// matchPrefix accepts hints strictly longer than the query that start with it.
func matchPrefix(hint string, q []rune) (Suggestion, bool) {
	h := []rune(hint)
	if len(h) <= len(q) || !hasRunePrefix(h, q) {
		return Suggestion{}, false
	}
	return Suggestion{Value: hint, HighlightIndexes: lo.Range(len(q))}, true
}

// matchToken finds the first delimiter-separated word of hint that starts
// with the query.
func matchToken(hint string, q []rune) (Suggestion, bool) {
	for _, tok := range tokenize([]rune(hint)) {
		if len(tok.text) >= len(q) && hasRunePrefix(tok.text, q) {
			return Suggestion{
				Value:            hint,
				HighlightIndexes: lo.RangeFrom(tok.start, len(q)),
			}, true
		}
	}
	return Suggestion{}, false
}

// matchSubsequence places every query rune, in order, at its leftmost
// occurrence after the previous match.
func matchSubsequence(hint string, q []rune) (Suggestion, bool) {
	h := []rune(hint)
	highlights := make([]int, 0, len(q))
	from := 0
	for _, r := range q {
		idx := indexRuneFrom(h, r, from)
		if idx < 0 {
			return Suggestion{}, false
		}
		highlights = append(highlights, idx)
		from = idx + 1
	}
	return Suggestion{Value: hint, HighlightIndexes: highlights}, true
}

type token struct {
	text  []rune
	start int
}

func tokenize(h []rune) []token {
	var tokens []token
	start := -1
	for i, r := range h {
		if lo.Contains(tokenDelimiters, r) {
			if start >= 0 {
				tokens = append(tokens, token{text: h[start:i], start: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: h[start:], start: start})
	}
	return tokens
}

func hasRunePrefix(s, prefix []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	return string(s[:len(prefix)]) == string(prefix)
}

func indexRuneFrom(s []rune, r rune, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == r {
			return i
		}
	}
	return -1
}

func runeLen(s string) int {
	return len([]rune(s))
}

