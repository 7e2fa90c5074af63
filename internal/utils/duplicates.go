package utils

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// SuggestionFilter drops words already seen, compared case insensitively. The input
// word itself counts as seen so it is never suggested back.
type SuggestionFilter struct {
	seen mapset.Set[string]
}

// NewSuggestionFilter creates a filter that excludes input.
func NewSuggestionFilter(input string) *SuggestionFilter {
	return &SuggestionFilter{seen: mapset.NewThreadUnsafeSet(NormalizeWord(input))}
}

// ShouldInclude reports whether word is new, and marks it seen.
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	return f.seen.Add(NormalizeWord(word))
}
