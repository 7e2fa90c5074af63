// Package spell finds dictionary words close to a misspelled query using the
// Levenshtein edit distance (unit cost insertions, deletions and substitutions).
package spell

// Distance computes the Levenshtein distance between a and b with the full
// (len(a)+1) x (len(b)+1) matrix. Strings are compared rune by rune.
func Distance(a, b string) int {
	runesA := []rune(a)
	runesB := []rune(b)

	lenA := len(runesA)
	lenB := len(runesB)

	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	// matrix[i][j] is the distance between the first i runes of a and the first j runes of b
	matrix := make([][]int, lenA+1)
	for i := range matrix {
		matrix[i] = make([]int, lenB+1)
		matrix[i][0] = i
	}
	for j := 0; j <= lenB; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= lenA; i++ {
		for j := 1; j <= lenB; j++ {
			if runesA[i-1] == runesB[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
				continue
			}
			matrix[i][j] = 1 + min3(
				matrix[i-1][j],   // deletion
				matrix[i][j-1],   // insertion
				matrix[i-1][j-1], // substitution
			)
		}
	}

	return matrix[lenA][lenB]
}

// DistanceOptimized returns the same value as Distance while keeping only two rows,
// sized by the shorter input.
func DistanceOptimized(a, b string) int {
	short := []rune(a)
	long := []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}

	if len(short) == 0 {
		return len(long)
	}

	prev := make([]int, len(short)+1)
	curr := make([]int, len(short)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(long); i++ {
		curr[0] = i
		for j := 1; j <= len(short); j++ {
			if long[i-1] == short[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = 1 + min3(prev[j], curr[j-1], prev[j-1])
		}
		prev, curr = curr, prev
	}

	return prev[len(short)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
