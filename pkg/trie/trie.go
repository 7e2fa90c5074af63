// Package trie is the frequency annotated prefix tree behind the suggestion engine.
//
// Every terminal node carries the canonical (lowercased, trimmed) word and its
// frequency. Lookups are O(length); ranked retrieval walks the prefix subtree once and
// keeps the best k entries in a bounded heap instead of sorting the whole subtree.
//
// All traversals (collection, deletion, node counting) use explicit stacks so that
// pathological long words cannot exhaust the goroutine stack.
package trie

import (
	"container/heap"
	"sort"

	"github.com/bastiangx/wordsuggest/internal/utils"
)

// Entry is a stored word with its frequency.
type Entry struct {
	Word      string
	Frequency int
}

// Stats holds the dictionary size and the number of allocated nodes (root included).
type Stats struct {
	Words int
	Nodes int
}

type node struct {
	children  map[rune]*node
	terminal  bool
	frequency int
	word      string
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// Trie is not safe for concurrent use; suggest.Engine serializes access to it.
type Trie struct {
	root  *node
	words int
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: newNode()}
}

// Insert adds word with the given frequency, or overwrites the frequency when the
// word is already stored. Negative frequencies are clamped to 0.
// Returns false when the word is empty after normalization.
func (t *Trie) Insert(word string, frequency int) bool {
	word = utils.NormalizeWord(word)
	if word == "" {
		return false
	}
	if frequency < 0 {
		frequency = 0
	}

	current := t.root
	for _, r := range word {
		child, ok := current.children[r]
		if !ok {
			child = newNode()
			current.children[r] = child
		}
		current = child
	}

	if !current.terminal {
		current.terminal = true
		t.words++
	}
	current.frequency = frequency
	current.word = word
	return true
}

// Search reports whether word is stored as a complete word.
func (t *Trie) Search(word string) bool {
	n := t.find(utils.NormalizeWord(word))
	return n != nil && n.terminal
}

// StartsWith reports whether any stored word starts with prefix.
// A complete word is its own prefix.
func (t *Trie) StartsWith(prefix string) bool {
	return t.find(utils.NormalizeWord(prefix)) != nil
}

// Frequency returns the stored frequency of word.
func (t *Trie) Frequency(word string) (int, bool) {
	n := t.find(utils.NormalizeWord(word))
	if n == nil || !n.terminal {
		return 0, false
	}
	return n.frequency, true
}

// UpdateFrequency sets the frequency of an already stored word.
// It fails without mutation for unknown words and negative frequencies.
func (t *Trie) UpdateFrequency(word string, frequency int) bool {
	if frequency < 0 {
		return false
	}
	n := t.find(utils.NormalizeWord(word))
	if n == nil || !n.terminal {
		return false
	}
	n.frequency = frequency
	return true
}

type pathStep struct {
	parent *node
	key    rune
}

// Delete removes word and prunes every branch left without words.
// Returns false, leaving the trie untouched, if the word is not stored.
func (t *Trie) Delete(word string) bool {
	word = utils.NormalizeWord(word)
	if word == "" {
		return false
	}

	path := make([]pathStep, 0, len(word))
	current := t.root
	for _, r := range word {
		child, ok := current.children[r]
		if !ok {
			return false
		}
		path = append(path, pathStep{parent: current, key: r})
		current = child
	}
	if !current.terminal {
		return false
	}

	current.terminal = false
	current.frequency = 0
	current.word = ""
	t.words--

	// unwind from the deepest frame, dropping children that became empty
	for i := len(path) - 1; i >= 0; i-- {
		step := path[i]
		child := step.parent.children[step.key]
		if child.terminal || len(child.children) > 0 {
			break
		}
		delete(step.parent.children, step.key)
	}
	return true
}

// Suggestions returns at most k words starting with prefix, highest frequency first.
// Equal frequencies are ordered by word ascending. An empty prefix yields nothing.
func (t *Trie) Suggestions(prefix string, k int) []Entry {
	prefix = utils.NormalizeWord(prefix)
	if prefix == "" || k < 1 {
		return []Entry{}
	}
	start := t.find(prefix)
	if start == nil {
		return []Entry{}
	}

	top := make(entryHeap, 0, k)
	collect(start, func(e Entry) {
		if len(top) < k {
			heap.Push(&top, e)
			return
		}
		if ranksBefore(e, top[0]) {
			top[0] = e
			heap.Fix(&top, 0)
		}
	})

	result := make([]Entry, len(top))
	for i := len(top) - 1; i >= 0; i-- {
		result[i] = heap.Pop(&top).(Entry)
	}
	return result
}

// Words returns every stored word, sorted by word.
func (t *Trie) Words() []Entry {
	entries := make([]Entry, 0, t.words)
	collect(t.root, func(e Entry) {
		entries = append(entries, e)
	})
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Word < entries[j].Word
	})
	return entries
}

// Len returns the number of stored words.
func (t *Trie) Len() int {
	return t.words
}

// Stats counts nodes with a full traversal.
func (t *Trie) Stats() Stats {
	nodes := 0
	stack := []*node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++
		for _, child := range n.children {
			stack = append(stack, child)
		}
	}
	return Stats{Words: t.words, Nodes: nodes}
}

func (t *Trie) find(s string) *node {
	current := t.root
	for _, r := range s {
		child, ok := current.children[r]
		if !ok {
			return nil
		}
		current = child
	}
	return current
}

// collect visits every terminal node below (and including) start.
func collect(start *node, visit func(Entry)) {
	stack := []*node{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.terminal {
			visit(Entry{Word: n.word, Frequency: n.frequency})
		}
		for _, child := range n.children {
			stack = append(stack, child)
		}
	}
}

// ranksBefore is the result order: frequency descending, then word ascending.
func ranksBefore(a, b Entry) bool {
	if a.Frequency != b.Frequency {
		return a.Frequency > b.Frequency
	}
	return a.Word < b.Word
}

// entryHeap keeps the worst ranked entry at the root so it can be replaced.
type entryHeap []Entry

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return ranksBefore(h[j], h[i]) }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(Entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
