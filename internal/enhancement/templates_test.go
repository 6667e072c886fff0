package enhancement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-optimizer/internal/predict"
	"github.com/jonathan/resume-optimizer/internal/types"
)

func TestTemplateSentence_SectionSelection(t *testing.T) {
	assert.Equal(t, "Proficient in kubernetes.",
		TemplateSentence(types.SectionSkills, "kubernetes", 5))
	assert.Equal(t, "Utilized terraform for development.",
		TemplateSentence(types.SectionExperience, "terraform", 5))
	assert.Equal(t, "Built with docker.",
		TemplateSentence(types.SectionProjects, "docker", 5))
	assert.Equal(t, "Skilled in python.",
		TemplateSentence(types.SectionSummary, "python", 5))
}

func TestTemplateSentence_LongerParagraphsGetLongerPhrasings(t *testing.T) {
	short := TemplateSentence(types.SectionSkills, "go", 5)
	medium := TemplateSentence(types.SectionSkills, "go", 25)
	long := TemplateSentence(types.SectionSkills, "go", 45)

	assert.Equal(t, "Proficient in go.", short)
	assert.Equal(t, "Skilled in go and related tooling.", medium)
	assert.Equal(t, "Hands-on proficiency with go across multiple projects.", long)

	// Word counts past the last template clamp to it.
	assert.Equal(t, long, TemplateSentence(types.SectionSkills, "go", 500))
}

func TestTemplateSentence_UnknownSectionUsesDefaults(t *testing.T) {
	assert.Equal(t, "Familiar with graphql.",
		TemplateSentence(types.SectionOther, "graphql", 5))
	assert.Equal(t, "Familiar with graphql.",
		TemplateSentence(types.SectionEducation, "graphql", 5))
}

func TestMaskSentence(t *testing.T) {
	masked := MaskSentence("Proficient in kubernetes.")
	assert.Equal(t, predict.MaskToken+" in kubernetes.", masked)
}

func TestMaskSentence_SingleWordUnchanged(t *testing.T) {
	assert.Equal(t, "Word.", MaskSentence("Word."))
}
