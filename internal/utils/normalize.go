package utils

import (
	"strconv"
	"strings"
)

// NormalizeWord returns the canonical form used for storage and lookups:
// surrounding whitespace trimmed and lowercased.
func NormalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CacheKey combines a normalized prefix with the requested result count
// so that different limits for one prefix never share a cache slot.
func CacheKey(prefix string, limit int) string {
	return prefix + "_" + strconv.Itoa(limit)
}

// CreateRankList creates a slice of ranks based on position.
// The rank starts at 1 for the first item and increments for subsequent items.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := 0; i < count; i++ {
		ranks[i] = uint16(i + 1)
	}
	return ranks
}
