package enhancement

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/predict"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// paragraphWordsPerStep controls template selection: every 20 words of
// existing paragraph text move the choice one template further down the
// set, biasing longer phrasings toward longer paragraphs.
const paragraphWordsPerStep = 20

// sectionTemplates maps each section to its insertion phrasings, shortest
// first. The %s slot receives the keyword.
var sectionTemplates = map[types.SectionType][]string{
	types.SectionSkills: {
		"Proficient in %s.",
		"Skilled in %s and related tooling.",
		"Hands-on proficiency with %s across multiple projects.",
	},
	types.SectionExperience: {
		"Utilized %s for development.",
		"Worked with %s to deliver production systems.",
		"Applied %s extensively while building and operating production services.",
	},
	types.SectionProjects: {
		"Built with %s.",
		"Leveraged %s during implementation.",
		"Incorporated %s into the design and implementation of key features.",
	},
	types.SectionSummary: {
		"Skilled in %s.",
		"Brings working knowledge of %s.",
		"Combines practical expertise in %s with a track record of delivery.",
	},
}

// defaultTemplates covers sections with no dedicated set.
var defaultTemplates = []string{
	"Familiar with %s.",
	"Has applied %s in professional settings.",
}

// TemplateSentence returns the deterministic templated sentence for a
// keyword given the section and the word count of the target paragraph.
func TemplateSentence(section types.SectionType, keyword string, paragraphWords int) string {
	templates, ok := sectionTemplates[section]
	if !ok {
		templates = defaultTemplates
	}

	idx := paragraphWords / paragraphWordsPerStep
	if idx >= len(templates) {
		idx = len(templates) - 1
	}
	return fmt.Sprintf(templates[idx], keyword)
}

// MaskSentence replaces the leading word of a templated sentence with the
// prediction placeholder, producing the fill-mask query.
func MaskSentence(sentence string) string {
	parts := strings.SplitN(sentence, " ", 2)
	if len(parts) < 2 {
		return sentence
	}
	return predict.MaskToken + " " + parts[1]
}
