// Package enhancement rewrites paragraph text to carry missing keywords
// while keeping repetition under a configured density ceiling.
package enhancement

import "strings"

// minBlockWords is the block size below which density is not measured:
// short blocks are too small for an occurrence ratio to mean anything.
const minBlockWords = 10

// DefaultDensityLimit is the default occurrence/word-count ceiling.
const DefaultDensityLimit = 0.03

// AllowsInsertion reports whether inserting keyword once more into block
// keeps the keyword's occurrence/word-count ratio under limit. It must be
// re-evaluated before every insertion attempt, since the block grows as
// keywords are added.
func AllowsInsertion(block, keyword string, limit float64) bool {
	words := strings.Fields(block)
	if len(words) < minBlockWords {
		return true
	}

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return false
	}

	occurrences := strings.Count(strings.ToLower(block), strings.ToLower(keyword))
	keywordWords := len(strings.Fields(keyword))

	ratio := float64(occurrences+1) / float64(len(words)+keywordWords)
	return ratio < limit
}
