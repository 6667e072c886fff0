// Package classification maps resume paragraphs to semantic section types.
// Classification is pure: the running "current section" state during a
// rebuild is owned by the rebuilder, not by this package.
package classification

import (
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// maxHeaderWords is the longest paragraph still considered a header candidate.
const maxHeaderWords = 5

// sectionOrder fixes the lookup order so classification is deterministic.
var sectionOrder = []types.SectionType{
	types.SectionSummary,
	types.SectionSkills,
	types.SectionExperience,
	types.SectionProjects,
	types.SectionEducation,
	types.SectionAwards,
	types.SectionCertifications,
}

// headerKeywords maps each section to the header phrases that introduce it.
var headerKeywords = map[types.SectionType][]string{
	types.SectionSummary: {
		"summary", "professional summary", "overview", "objective",
		"career objective", "profile", "about me",
	},
	types.SectionSkills: {
		"skills", "technical skills", "core competencies", "competencies",
		"technologies", "tech stack", "tools",
	},
	types.SectionExperience: {
		"experience", "work experience", "professional experience",
		"employment", "employment history", "work history",
	},
	types.SectionProjects: {
		"projects", "personal projects", "selected projects",
		"academic projects", "portfolio",
	},
	types.SectionEducation: {
		"education", "academic background", "qualifications",
	},
	types.SectionAwards: {
		"awards", "honors", "achievements", "accomplishments",
	},
	types.SectionCertifications: {
		"certifications", "certificates", "licenses",
	},
}

// contentHints classify non-header paragraphs by characteristic vocabulary.
var contentHints = []struct {
	section types.SectionType
	words   []string
}{
	{types.SectionProjects, []string{"developed", "built", "created", "designed", "implemented"}},
	{types.SectionExperience, []string{"managed", "led", "coordinated", "supervised", "delivered"}},
	{types.SectionEducation, []string{"degree", "university", "college", "bachelor", "master", "gpa"}},
}

// IsHeader reports whether a paragraph is a section header.
func IsHeader(text string) bool {
	_, ok := HeaderSection(text)
	return ok
}

// HeaderSection returns the section a header paragraph introduces. A header
// has at most five words and its lowercase form equals or starts with one of
// the section header phrases.
func HeaderSection(text string) (types.SectionType, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len(strings.Fields(trimmed)) > maxHeaderWords {
		return types.SectionOther, false
	}

	lower := strings.ToLower(strings.TrimRight(trimmed, ":"))
	for _, section := range sectionOrder {
		for _, kw := range headerKeywords[section] {
			if lower == kw || strings.HasPrefix(lower, kw+" ") || strings.HasPrefix(lower, kw+":") {
				return section, true
			}
		}
	}
	return types.SectionOther, false
}

// Classify maps a paragraph to a section type. Headers classify by the
// header table; other paragraphs fall back first to keyword containment,
// then to content vocabulary hints, defaulting to SectionOther.
func Classify(text string) types.SectionType {
	if section, ok := HeaderSection(text); ok {
		return section
	}

	lower := strings.ToLower(text)
	for _, section := range sectionOrder {
		for _, kw := range headerKeywords[section] {
			if strings.Contains(lower, kw) {
				return section
			}
		}
	}

	for _, hint := range contentHints {
		for _, w := range hint.words {
			if strings.Contains(lower, w) {
				return hint.section
			}
		}
	}
	return types.SectionOther
}
