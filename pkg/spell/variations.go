package spell

import (
	mapset "github.com/deckarep/golang-set/v2"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Variations returns every string reachable from word by at most maxDistance single
// edits: deletions, substitutions and insertions over a-z, and adjacent transpositions.
// The word itself is always included. The set grows very quickly past distance 2.
func Variations(word string, maxDistance int) mapset.Set[string] {
	result := mapset.NewThreadUnsafeSet(word)
	if maxDistance <= 0 {
		return result
	}

	frontier := []string{word}
	for step := 0; step < maxDistance; step++ {
		next := make([]string, 0)
		for _, w := range frontier {
			for _, v := range edits(w) {
				if result.Add(v) {
					next = append(next, v)
				}
			}
		}
		frontier = next
	}
	return result
}

// edits returns the distance-1 neighbours of w, possibly with duplicates.
func edits(w string) []string {
	runes := []rune(w)
	n := len(runes)
	out := make([]string, 0, n*2*len(alphabet)+len(alphabet)+n)

	for i := 0; i < n; i++ {
		out = append(out, string(runes[:i])+string(runes[i+1:]))
	}

	for i := 0; i < n; i++ {
		for _, c := range alphabet {
			if c == runes[i] {
				continue
			}
			out = append(out, string(runes[:i])+string(c)+string(runes[i+1:]))
		}
	}

	for i := 0; i <= n; i++ {
		for _, c := range alphabet {
			out = append(out, string(runes[:i])+string(c)+string(runes[i:]))
		}
	}

	for i := 0; i+1 < n; i++ {
		swapped := make([]rune, n)
		copy(swapped, runes)
		swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
		out = append(out, string(swapped))
	}
	return out
}
