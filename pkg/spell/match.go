package spell

import (
	"sort"
	"unicode/utf8"

	"github.com/bastiangx/wordsuggest/internal/utils"
)

// Entry is a dictionary word with its frequency.
type Entry struct {
	Word      string
	Frequency int
}

// Match is a dictionary word within the requested edit distance of a query.
type Match struct {
	Word      string
	Frequency int
	Distance  int
}

// Correction is a dictionary word scored by normalized similarity in [0, 1].
type Correction struct {
	Word       string
	Frequency  int
	Similarity float64
}

// Dictionary is an immutable snapshot of words to match against.
type Dictionary struct {
	entries []Entry
}

// NewDictionary copies entries into a snapshot; later changes to the slice are not seen.
func NewDictionary(entries []Entry) *Dictionary {
	snapshot := make([]Entry, len(entries))
	copy(snapshot, entries)
	return &Dictionary{entries: snapshot}
}

// Len returns the number of words in the snapshot.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// FindSimilar returns up to k words whose distance to query is at most maxDistance.
// The query itself (compared case-insensitively) is never returned. Results are ordered
// by distance ascending, then frequency descending, then word ascending.
func FindSimilar(query string, dict *Dictionary, maxDistance, k int) []Match {
	query = utils.NormalizeWord(query)
	if dict == nil || k < 1 || maxDistance < 0 {
		return []Match{}
	}

	matches := make([]Match, 0)
	queryLen := utf8.RuneCountInString(query)
	for _, e := range dict.entries {
		word := utils.NormalizeWord(e.Word)
		if word == query {
			continue
		}
		// a length gap larger than maxDistance can never be closed
		if abs(utf8.RuneCountInString(word)-queryLen) > maxDistance {
			continue
		}
		d := DistanceOptimized(query, word)
		if d <= maxDistance {
			matches = append(matches, Match{Word: e.Word, Frequency: e.Frequency, Distance: d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		return a.Word < b.Word
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// SuggestCorrections scores every word by 1 - distance/max(len(query), len(word)) and
// returns up to k words scoring at least threshold, best first. Ties fall back to
// frequency descending, then word ascending.
func SuggestCorrections(query string, dict *Dictionary, threshold float64, k int) []Correction {
	query = utils.NormalizeWord(query)
	if dict == nil || k < 1 {
		return []Correction{}
	}

	corrections := make([]Correction, 0)
	queryLen := utf8.RuneCountInString(query)
	for _, e := range dict.entries {
		word := utils.NormalizeWord(e.Word)
		maxLen := max(queryLen, utf8.RuneCountInString(word))

		similarity := 0.0
		if maxLen > 0 {
			similarity = 1 - float64(DistanceOptimized(query, word))/float64(maxLen)
		}
		if similarity >= threshold {
			corrections = append(corrections, Correction{Word: e.Word, Frequency: e.Frequency, Similarity: similarity})
		}
	}

	sort.Slice(corrections, func(i, j int) bool {
		a, b := corrections[i], corrections[j]
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		return a.Word < b.Word
	})

	if len(corrections) > k {
		corrections = corrections[:k]
	}
	return corrections
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
