package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunState_MarkProcessedCaseInsensitive(t *testing.T) {
	state := NewRunState()
	assert.False(t, state.IsProcessed("kubernetes"))

	state.MarkProcessed("  Kubernetes ")
	assert.True(t, state.IsProcessed("kubernetes"))
	assert.True(t, state.IsProcessed("KUBERNETES"))
	assert.False(t, state.IsProcessed("docker"))
}

func TestRunState_ResetSection(t *testing.T) {
	state := NewRunState()
	state.SectionKeywordsUsed = 3
	state.KeywordsAdded = 5

	state.ResetSection()
	assert.Equal(t, 0, state.SectionKeywordsUsed)
	assert.Equal(t, 5, state.KeywordsAdded, "global counter must survive section resets")
}

func TestDocument_TextSkipsEmptyParagraphs(t *testing.T) {
	doc := &Document{Paragraphs: []Paragraph{
		{Text: "Skills"},
		{Text: "   "},
		{Text: ""},
		{Text: "Go, Python"},
	}}
	assert.Equal(t, "Skills\nGo, Python", doc.Text())
}

func TestDocument_Clone(t *testing.T) {
	doc := &Document{Paragraphs: []Paragraph{{Text: "original"}}}
	clone := doc.Clone()

	clone.Paragraphs[0].Text = "changed"
	assert.Equal(t, "original", doc.Paragraphs[0].Text)
}
