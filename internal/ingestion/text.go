// Package ingestion provides input handling for optimization runs: text
// normalization, resume document reading and job description loading from
// plain text, PDF files or URLs.
package ingestion

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize cleans a block of text for keyword analysis. Characters outside
// the whitelist (alphanumerics, spaces and the technical punctuation + # . -)
// are replaced with spaces, runs of whitespace collapse to a single space and
// the result is trimmed. Normalize is pure and idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if allowedRune(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(' ')
		}
	}

	collapsed := whitespaceRe.ReplaceAllString(sb.String(), " ")
	return strings.TrimSpace(collapsed)
}

func allowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '+', r == '#', r == '.', r == '-':
		return true
	}
	return false
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
