package rendering

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// writeFixtureDocx builds a minimal .docx archive around the given body XML.
func writeFixtureDocx(t *testing.T, path, body string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

const fixtureBody = `<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:b/></w:rPr><w:t>Skills</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Go | Python</w:t></w:r></w:p>`

func TestWriteDocument_RewritesChangedParagraphs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "resume.docx")
	dst := filepath.Join(dir, "out.docx")
	writeFixtureDocx(t, src, fixtureBody)

	doc, err := ingestion.ReadDocument(src)
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 2)

	doc.Paragraphs[1].Text = "Go | Python | kubernetes"

	err = WriteDocument(src, doc, dst)
	require.NoError(t, err)

	out, err := ingestion.ReadDocument(dst)
	require.NoError(t, err)
	require.Len(t, out.Paragraphs, 2)
	assert.Equal(t, "Skills", out.Paragraphs[0].Text)
	assert.Equal(t, "Go | Python | kubernetes", out.Paragraphs[1].Text)

	// The untouched header keeps its original run properties.
	assert.Equal(t, "<w:rPr><w:b/></w:rPr>", out.Paragraphs[0].Formatting.RunProps)
}

func TestWriteDocument_UnchangedParagraphsVerbatim(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "resume.docx")
	dst := filepath.Join(dir, "out.docx")
	writeFixtureDocx(t, src, fixtureBody)

	doc, err := ingestion.ReadDocument(src)
	require.NoError(t, err)

	err = WriteDocument(src, doc, dst)
	require.NoError(t, err)

	out, err := ingestion.ReadDocument(dst)
	require.NoError(t, err)
	for i := range doc.Paragraphs {
		assert.Equal(t, doc.Paragraphs[i].Formatting.Raw, out.Paragraphs[i].Formatting.Raw)
	}
}

func TestWriteDocument_EscapesText(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "resume.docx")
	dst := filepath.Join(dir, "out.docx")
	writeFixtureDocx(t, src, fixtureBody)

	doc, err := ingestion.ReadDocument(src)
	require.NoError(t, err)
	doc.Paragraphs[1].Text = "C++ & <systems> programming"

	require.NoError(t, WriteDocument(src, doc, dst))

	out, err := ingestion.ReadDocument(dst)
	require.NoError(t, err)
	assert.Equal(t, "C++ & <systems> programming", out.Paragraphs[1].Text)
}

func TestWriteDocument_ParagraphCountMismatch(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "resume.docx")
	writeFixtureDocx(t, src, fixtureBody)

	doc := &types.Document{Paragraphs: []types.Paragraph{{Text: "only one"}}}
	err := WriteDocument(src, doc, filepath.Join(dir, "out.docx"))
	require.Error(t, err)

	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Contains(t, writeErr.Message, "paragraph count mismatch")
}

func TestWriteDocument_MissingSource(t *testing.T) {
	dir := t.TempDir()
	doc := &types.Document{}
	err := WriteDocument(filepath.Join(dir, "missing.docx"), doc, filepath.Join(dir, "out.docx"))
	assert.Error(t, err)
}

func TestDocumentHTML_HeadersEmphasized(t *testing.T) {
	doc := &types.Document{Paragraphs: []types.Paragraph{
		{Text: "Skills"},
		{Text: ""},
		{Text: "Go & Python"},
	}}

	html := documentHTML(doc)
	assert.Contains(t, html, "<h2>Skills</h2>")
	assert.Contains(t, html, "<p>Go &amp; Python</p>")
}
