package spell

import (
	"math"
	"strings"
)

// qwertyNeighbours maps each letter to the keys physically adjacent to it.
var qwertyNeighbours = map[rune]string{
	'q': "wa", 'w': "qeas", 'e': "wrds", 'r': "etfd", 't': "rygf",
	'y': "tuhg", 'u': "yijh", 'i': "uokj", 'o': "iplk", 'p': "ol",
	'a': "qwsz", 's': "awedxz", 'd': "serfcx", 'f': "drtgvc", 'g': "ftyhbv",
	'h': "gyujnb", 'j': "huikmn", 'k': "jiolm", 'l': "kop",
	'z': "asx", 'x': "zsdc", 'c': "xdfv", 'v': "cfgb", 'b': "vghn",
	'n': "bhjm", 'm': "njk",
}

// KeyboardDistance is a substitution-only distance for equal length words where
// swapping in a neighbouring QWERTY key costs 0.5 and any other substitution costs 1.
// Words of different rune length are infinitely far apart.
func KeyboardDistance(a, b string) float64 {
	runesA := []rune(strings.ToLower(a))
	runesB := []rune(strings.ToLower(b))
	if len(runesA) != len(runesB) {
		return math.Inf(1)
	}

	distance := 0.0
	for i, ra := range runesA {
		rb := runesB[i]
		switch {
		case ra == rb:
		case strings.ContainsRune(qwertyNeighbours[ra], rb):
			distance += 0.5
		default:
			distance += 1
		}
	}
	return distance
}
