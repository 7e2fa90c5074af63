// Package suggest is the core, binding the frequency trie, the query cache and the
// fuzzy matcher behind one concurrency safe API.
package suggest

// Completer is the query and mutation surface the front-ends (CLI, IPC server) depend on.
type Completer interface {
	// Suggestions returns ranked completions for prefix
	Suggestions(prefix string, k int, useCache bool) Result

	// SuggestionsWithSpellCheck falls back to fuzzy matches when prefix search finds nothing
	SuggestionsWithSpellCheck(query string, k, maxEditDistance int) Result

	AddWord(word string, frequency int) bool
	AddWordsBulk(entries []Entry) int
	UpdateFrequency(word string, frequency int) bool
	IncrementFrequency(word string, amount int) bool
	DeleteWord(word string) bool
	SearchWord(word string) bool

	Statistics() Statistics
	ResetStatistics()
	ClearCache()

	// Words snapshots the dictionary; CachedQueries lists cache keys, most recent first.
	Words() []Entry
	CachedQueries() []string
}

var _ Completer = (*Engine)(nil)
