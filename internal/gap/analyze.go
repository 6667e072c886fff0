// Package gap computes the vocabulary gap between a resume and a job
// description: the ordered list of job-description keywords the resume is
// missing.
package gap

import (
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-optimizer/internal/extraction"
)

const (
	// JobTopK is how many keywords are extracted from the job description.
	JobTopK = 50
	// ResumeTopK is how many keywords are extracted from the resume. The
	// resume side is narrower: only its dominant vocabulary should suppress
	// a job-description term.
	ResumeTopK = 30

	// minKeywordLength excludes terms too short to be meaningful insertions.
	minKeywordLength = 2
	// fallbackLength admits any term longer than this when no other
	// relevance signal fires. Without the fallback, job descriptions
	// dominated by soft-skill language would produce nothing at all.
	fallbackLength = 3
)

var (
	versionRe = regexp.MustCompile(`\d`)
	acronymRe = regexp.MustCompile(`^[A-Z]{2,5}$`)
)

// MissingKeywords returns the job-description keywords absent from the
// resume, in job-description frequency order, truncated to maxKeywords.
// Keywords already in processed (case-insensitive) are excluded so a term
// inserted earlier in a run never re-qualifies.
func MissingKeywords(resumeText, jobText string, processed map[string]struct{}, maxKeywords int) []string {
	var jobKeywords, resumeKeywords []string

	// Extraction of the two texts is independent; run both sides at once.
	var g errgroup.Group
	g.Go(func() error {
		jobKeywords = extraction.Extract(jobText, JobTopK)
		return nil
	})
	g.Go(func() error {
		resumeKeywords = extraction.Extract(resumeText, ResumeTopK)
		return nil
	})
	_ = g.Wait()

	resumeSet := make(map[string]struct{}, len(resumeKeywords))
	for _, kw := range resumeKeywords {
		resumeSet[strings.ToLower(kw)] = struct{}{}
	}

	missing := make([]string, 0, maxKeywords)
	seen := make(map[string]struct{})
	for _, kw := range jobKeywords {
		if maxKeywords > 0 && len(missing) >= maxKeywords {
			break
		}
		lower := strings.ToLower(kw)
		if len(lower) <= minKeywordLength {
			continue
		}
		if _, ok := resumeSet[lower]; ok {
			continue
		}
		if _, ok := seen[lower]; ok {
			continue
		}
		if processed != nil {
			if _, ok := processed[lower]; ok {
				continue
			}
		}
		if !Relevant(kw) {
			continue
		}
		missing = append(missing, kw)
		seen[lower] = struct{}{}
	}
	return missing
}

// Relevant reports whether a keyword is worth inserting: a curated
// technology/role term, a term carrying a digit or version marker, a short
// uppercase acronym, or (as a permissive fallback) any term longer than
// three characters.
func Relevant(keyword string) bool {
	lower := strings.ToLower(keyword)
	if isTechTerm(lower) {
		return true
	}
	if versionRe.MatchString(keyword) {
		return true
	}
	if acronymRe.MatchString(keyword) {
		return true
	}
	return len(keyword) > fallbackLength
}
