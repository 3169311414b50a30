package search

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the case folded form of text. A cases.Caser keeps state and is not
// safe for concurrent use, so every call gets its own.
func Fold(text string) string {
	return cases.Fold().String(text)
}

// Matcher tests texts against a query folded once up front.
type Matcher struct {
	query string
}

func NewMatcher(query string) *Matcher {
	return &Matcher{query: Fold(query)}
}

// IsEmpty is true for queries with nothing but whitespace.
func (m *Matcher) IsEmpty() bool {
	return strings.TrimSpace(m.query) == ""
}

// Match reports whether any of the texts contains the query, ignoring case.
// Surrounding whitespace in the query is part of the match. An empty query
// matches everything.
func (m *Matcher) Match(texts ...string) bool {
	if m.IsEmpty() {
		return true
	}
	for _, text := range texts {
		if text == "" {
			continue
		}
		if strings.Contains(Fold(text), m.query) {
			return true
		}
	}
	return false
}

// CompareFolded orders two strings by their folded form.
func CompareFolded(a, b string) int {
	return strings.Compare(Fold(a), Fold(b))
}
