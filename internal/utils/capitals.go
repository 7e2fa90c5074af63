package utils

import (
	"strings"
	"unicode"
)

// CapitalInfo records where the letters of a query were upper case, so completions
// can be shown the way the user typed them.
type CapitalInfo struct {
	positions []int // rune offsets
	allUpper  bool
}

// ProcessCapitals returns the lower case form of s and its capitalization. The info
// is nil when s has no upper case letters.
func ProcessCapitals(s string) (string, *CapitalInfo) {
	info := &CapitalInfo{}
	letters := 0
	i := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
		}
		if unicode.IsUpper(r) {
			info.positions = append(info.positions, i)
		}
		i++
	}

	if len(info.positions) == 0 {
		return strings.ToLower(s), nil
	}
	info.allUpper = letters > 1 && len(info.positions) == letters
	return strings.ToLower(s), info
}

// ApplyCapitals upper cases word at the recorded positions. An all caps query
// upper cases the whole word.
func ApplyCapitals(word string, info *CapitalInfo) string {
	if info == nil {
		return word
	}
	if info.allUpper {
		return strings.ToUpper(word)
	}

	runes := []rune(word)
	for _, pos := range info.positions {
		if pos < len(runes) {
			runes[pos] = unicode.ToUpper(runes[pos])
		}
	}
	return string(runes)
}
