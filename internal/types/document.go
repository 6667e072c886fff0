// Package types provides type definitions for structured data used throughout the resume-optimizer system.
package types

import "strings"

// SectionType identifies a semantic region of a resume.
type SectionType string

const (
	SectionSummary        SectionType = "summary"
	SectionSkills         SectionType = "skills"
	SectionExperience     SectionType = "experience"
	SectionProjects       SectionType = "projects"
	SectionEducation      SectionType = "education"
	SectionAwards         SectionType = "awards"
	SectionCertifications SectionType = "certifications"
	SectionOther          SectionType = "other"
)

// Formatting is the opaque attribute bag carried alongside each paragraph.
// The fields hold raw fragments of the source word-processing markup; the
// engine never interprets them, it only copies them positionally from the
// source paragraph to the output paragraph.
type Formatting struct {
	// Raw is the full original paragraph markup. Paragraphs whose text is
	// unchanged after a run are written back verbatim from Raw.
	Raw string
	// ParagraphProps is the paragraph-level property block (alignment, indent).
	ParagraphProps string
	// RunProps is the first run-level property block (bold/italic/font).
	RunProps string
}

// Paragraph is a single logical paragraph of a document.
type Paragraph struct {
	Text       string
	Formatting Formatting
}

// Document is an ordered sequence of paragraphs. A document read from a
// source file is never mutated in place; optimization produces a new one.
type Document struct {
	Paragraphs []Paragraph
}

// Text returns the plain text of the document, one line per non-empty paragraph.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, p := range d.Paragraphs {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{Paragraphs: make([]Paragraph, len(d.Paragraphs))}
	copy(out.Paragraphs, d.Paragraphs)
	return out
}
