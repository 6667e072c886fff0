// Package extraction implements frequency-ranked n-gram keyword extraction
// with stop-word and validity filtering.
package extraction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/ingestion"
)

const (
	// minInputLength is the threshold below which extraction yields nothing.
	minInputLength = 10
	// maxNgram bounds the phrase length considered a keyword.
	maxNgram = 3
)

var (
	numericRe = regexp.MustCompile(`^[0-9.]+$`)
	urlRe     = regexp.MustCompile(`(?i)(https?|www\.)`)
	// identRe accepts identifier-like terms with technical punctuation
	// (c++, c#, node.js, ci-cd) after case normalization.
	identRe = regexp.MustCompile(`^[a-z0-9][a-z0-9+#. -]*$`)
)

type candidate struct {
	display string // case of first occurrence, for display
	count   int
	first   int // first-occurrence rank, for stable tie-breaking
}

// Extract returns up to topK keywords from text, highest raw frequency first.
// Keywords are 1- to 3-grams built over the stop-word-filtered token stream.
// Frequency ties keep first-occurrence order. Empty or near-empty input
// yields an empty list, never an error.
func Extract(text string, topK int) []string {
	normalized := ingestion.Normalize(text)
	if len(normalized) < minInputLength || topK <= 0 {
		return nil
	}

	tokens := strings.Fields(normalized)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if isStopWord(strings.ToLower(tok)) {
			continue
		}
		kept = append(kept, tok)
	}

	counts := make(map[string]*candidate)
	rank := 0
	for n := 1; n <= maxNgram; n++ {
		for i := 0; i+n <= len(kept); i++ {
			gram := strings.Join(kept[i:i+n], " ")
			key := strings.ToLower(gram)
			if !ValidKeyword(key) {
				continue
			}
			if c, ok := counts[key]; ok {
				c.count++
				continue
			}
			counts[key] = &candidate{display: gram, count: 1, first: rank}
			rank++
		}
	}

	ordered := make([]*candidate, 0, len(counts))
	for _, c := range counts {
		ordered = append(ordered, c)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].first < ordered[j].first
	})

	if len(ordered) > topK {
		ordered = ordered[:topK]
	}
	keywords := make([]string, len(ordered))
	for i, c := range ordered {
		keywords[i] = c.display
	}
	return keywords
}

// ValidKeyword reports whether a case-normalized term is usable as a keyword:
// at least two characters, not purely numeric, not a URL fragment, and
// identifier-like allowing technical punctuation.
func ValidKeyword(term string) bool {
	if len(term) < 2 {
		return false
	}
	if numericRe.MatchString(term) {
		return false
	}
	if urlRe.MatchString(term) {
		return false
	}
	return identRe.MatchString(term)
}
