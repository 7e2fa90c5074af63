package suggest

import (
	"fmt"
	"sync"
	"time"

	"github.com/bastiangx/wordsuggest/internal/utils"
	"github.com/bastiangx/wordsuggest/pkg/cache"
	"github.com/bastiangx/wordsuggest/pkg/config"
	"github.com/bastiangx/wordsuggest/pkg/spell"
	"github.com/bastiangx/wordsuggest/pkg/trie"
	"github.com/charmbracelet/log"
)

// Entry is a word and frequency pair fed into the engine.
type Entry = trie.Entry

// Suggestion is a ranked completion or correction.
type Suggestion = trie.Entry

// Result is returned by every query.
type Result struct {
	Suggestions    []Suggestion
	DidYouMean     string // best fuzzy match, empty unless SpellCorrected
	QueryTime      time.Duration
	FromCache      bool // served from the query cache without touching the trie
	SpellCorrected bool // Suggestions come from fuzzy matching, not prefix search
}

// Statistics aggregates trie, cache and query counters.
type Statistics struct {
	TotalWords        int
	TotalNodes        int
	CacheCapacity     int
	CacheSize         int
	CacheHits         uint64
	CacheMisses       uint64
	CacheEvictions    uint64
	CacheHitRate      float64
	CacheUtilization  float64
	TotalQueries      uint64
	AvgQueryTime      time.Duration
	TotalQueryTime    time.Duration
	SpellCheckEnabled bool
}

// Engine binds the frequency trie, the query cache and the fuzzy matcher.
//
// Mutations take the write lock and clear the whole cache afterwards, since any
// frequency change can reorder any cached prefix. Queries share the read lock; the
// cache guards itself so concurrent misses on one key at worst store the same value twice.
type Engine struct {
	mu    sync.RWMutex
	trie  *trie.Trie
	cache *cache.LRU[[]Suggestion]
	opts  Options

	statsMu        sync.Mutex
	queries        uint64
	totalQueryTime time.Duration
}

// NewEngine builds an empty engine.
func NewEngine(opts ...Option) (*Engine, error) {
	options := DefaultOptions
	for _, opt := range opts {
		opt.Apply(&options)
	}
	if err := options.validate(); err != nil {
		return nil, err
	}

	c, err := cache.New[[]Suggestion](options.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating query cache: %w", err)
	}

	return &Engine{
		trie:  trie.New(),
		cache: c,
		opts:  options,
	}, nil
}

// NewEngineFromConfig builds an engine from the [engine] config section.
func NewEngineFromConfig(cfg config.EngineConfig) (*Engine, error) {
	return NewEngine(optionsFromConfig(cfg)...)
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// AddWord inserts or overwrites word. Empty input is refused with false.
func (e *Engine) AddWord(word string, frequency int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ok := e.trie.Insert(word, frequency)
	e.cache.Clear()
	return ok
}

// AddWordsBulk inserts every entry and clears the cache once. It returns how many
// entries were accepted.
func (e *Engine) AddWordsBulk(entries []Entry) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	added := 0
	for _, entry := range entries {
		if e.trie.Insert(entry.Word, entry.Frequency) {
			added++
		}
	}
	e.cache.Clear()
	log.Debugf("Bulk insert accepted %d of %d words", added, len(entries))
	return added
}

// UpdateFrequency sets the frequency of a stored word. Unknown words and negative
// frequencies are refused with false.
func (e *Engine) UpdateFrequency(word string, frequency int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ok := e.trie.UpdateFrequency(word, frequency)
	e.cache.Clear()
	return ok
}

// IncrementFrequency adds amount to the frequency of a stored word, typically when a
// suggestion is picked. A result below zero is refused.
func (e *Engine) IncrementFrequency(word string, amount int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ok := false
	if current, found := e.trie.Frequency(word); found && current+amount >= 0 {
		ok = e.trie.UpdateFrequency(word, current+amount)
	}
	e.cache.Clear()
	return ok
}

// DeleteWord removes word, reporting whether it was stored.
func (e *Engine) DeleteWord(word string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ok := e.trie.Delete(word)
	e.cache.Clear()
	return ok
}

// SearchWord reports whether word is stored.
func (e *Engine) SearchWord(word string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trie.Search(word)
}

// Suggestions returns up to k completions of prefix ranked by frequency. k < 1 uses the
// default limit. An empty prefix returns nothing and is never cached.
func (e *Engine) Suggestions(prefix string, k int, useCache bool) Result {
	start := time.Now()

	e.mu.RLock()
	res := e.prefixSuggestions(utils.NormalizeWord(prefix), k, useCache)
	e.mu.RUnlock()

	res.QueryTime = time.Since(start)
	e.recordQuery(res.QueryTime)
	return res
}

// SuggestionsWithSpellCheck behaves like Suggestions with the cache enabled, and when the
// prefix has no completions falls back to words within maxEditDistance of query.
// A negative maxEditDistance uses the engine default. Fuzzy results are never cached.
func (e *Engine) SuggestionsWithSpellCheck(query string, k, maxEditDistance int) Result {
	start := time.Now()
	query = utils.NormalizeWord(query)

	res := e.spellChecked(query, k, maxEditDistance)

	res.QueryTime = time.Since(start)
	e.recordQuery(res.QueryTime)
	return res
}

func (e *Engine) spellChecked(query string, k, maxEditDistance int) Result {
	if k < 1 {
		k = e.opts.DefaultLimit
	}
	if maxEditDistance < 0 {
		maxEditDistance = e.opts.MaxEditDistance
	}

	e.mu.RLock()
	res := e.prefixSuggestions(query, k, true)
	if query == "" || len(res.Suggestions) > 0 || !e.opts.SpellCheck {
		e.mu.RUnlock()
		return res
	}

	if limit := e.opts.FuzzyMaxWords; limit > 0 && e.trie.Len() > limit {
		words := e.trie.Len()
		e.mu.RUnlock()
		log.Warnf("Skipping spell check for %q: %d words exceeds the fuzzy limit of %d", query, words, limit)
		return Result{Suggestions: []Suggestion{}}
	}

	words := e.trie.Words()
	e.mu.RUnlock()

	snapshot := make([]spell.Entry, len(words))
	for i, w := range words {
		snapshot[i] = spell.Entry{Word: w.Word, Frequency: w.Frequency}
	}
	matches := spell.FindSimilar(query, spell.NewDictionary(snapshot), maxEditDistance, k)

	suggestions := make([]Suggestion, len(matches))
	for i, m := range matches {
		suggestions[i] = Suggestion{Word: m.Word, Frequency: m.Frequency}
	}

	corrected := Result{Suggestions: suggestions, SpellCorrected: true}
	if len(matches) > 0 {
		corrected.DidYouMean = matches[0].Word
	}
	return corrected
}

// prefixSuggestions expects a normalized prefix and the read lock held.
func (e *Engine) prefixSuggestions(prefix string, k int, useCache bool) Result {
	if prefix == "" {
		return Result{Suggestions: []Suggestion{}}
	}
	if k < 1 {
		k = e.opts.DefaultLimit
	}

	key := utils.CacheKey(prefix, k)
	if useCache {
		if cached, ok := e.cache.Get(key); ok {
			return Result{Suggestions: cloneSuggestions(cached), FromCache: true}
		}
	}

	suggestions := e.trie.Suggestions(prefix, k)
	if useCache {
		e.cache.Set(key, cloneSuggestions(suggestions))
	}
	return Result{Suggestions: suggestions}
}

// Statistics returns a consistent snapshot of all counters.
func (e *Engine) Statistics() Statistics {
	e.mu.RLock()
	trieStats := e.trie.Stats()
	e.mu.RUnlock()

	cacheStats := e.cache.Stats()

	e.statsMu.Lock()
	queries, total := e.queries, e.totalQueryTime
	e.statsMu.Unlock()

	var avg time.Duration
	if queries > 0 {
		avg = total / time.Duration(queries)
	}

	return Statistics{
		TotalWords:        trieStats.Words,
		TotalNodes:        trieStats.Nodes,
		CacheCapacity:     cacheStats.Capacity,
		CacheSize:         cacheStats.Size,
		CacheHits:         cacheStats.Hits,
		CacheMisses:       cacheStats.Misses,
		CacheEvictions:    cacheStats.Evictions,
		CacheHitRate:      cacheStats.HitRate,
		CacheUtilization:  cacheStats.Utilization,
		TotalQueries:      queries,
		AvgQueryTime:      avg,
		TotalQueryTime:    total,
		SpellCheckEnabled: e.opts.SpellCheck,
	}
}

// ResetStatistics zeroes the query and cache counters. Cached entries are kept.
func (e *Engine) ResetStatistics() {
	e.statsMu.Lock()
	e.queries = 0
	e.totalQueryTime = 0
	e.statsMu.Unlock()

	e.cache.ResetStats()
}

// ClearCache drops every memoized query.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// Words returns every stored word sorted alphabetically.
func (e *Engine) Words() []Entry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trie.Words()
}

// CachedQueries returns the cache keys from most to least recently used.
func (e *Engine) CachedQueries() []string {
	return e.cache.Keys()
}

func (e *Engine) recordQuery(d time.Duration) {
	e.statsMu.Lock()
	e.queries++
	e.totalQueryTime += d
	e.statsMu.Unlock()
}

func cloneSuggestions(s []Suggestion) []Suggestion {
	out := make([]Suggestion, len(s))
	copy(out, s)
	return out
}
