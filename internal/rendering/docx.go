package rendering

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/types"
)

var paragraphRe = regexp.MustCompile(`(?s)<w:p\b[^>]*/>|<w:p\b.*?</w:p>`)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// WriteDocument writes doc to dstPath using srcPath as the container:
// the source archive is copied and each paragraph whose text changed is
// rewritten in place, carrying over the original paragraph and run
// properties. Paragraphs with unchanged text (headers, empty paragraphs)
// are emitted byte-for-byte. srcPath itself is never modified.
func WriteDocument(srcPath string, doc *types.Document, dstPath string) error {
	r, err := docx.ReadDocxFile(srcPath)
	if err != nil {
		return &WriteError{Path: srcPath, Message: "failed to reopen source document", Cause: err}
	}
	defer r.Close()

	editable := r.Editable()
	content := editable.GetContent()

	spans := paragraphRe.FindAllString(content, -1)
	if len(spans) != len(doc.Paragraphs) {
		return &WriteError{
			Path:    dstPath,
			Message: fmt.Sprintf("paragraph count mismatch: source has %d, document has %d", len(spans), len(doc.Paragraphs)),
		}
	}

	idx := 0
	content = paragraphRe.ReplaceAllStringFunc(content, func(span string) string {
		para := doc.Paragraphs[idx]
		idx++
		if para.Text == ingestion.ParagraphText(span) {
			return span
		}
		return buildParagraphXML(para)
	})

	editable.SetContent(content)
	if err := editable.WriteToFile(dstPath); err != nil {
		return &WriteError{Path: dstPath, Message: "failed to write document", Cause: err}
	}
	return nil
}

// buildParagraphXML renders a changed paragraph as a single run, copying
// the source paragraph and first-run properties.
func buildParagraphXML(para types.Paragraph) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	sb.WriteString(para.Formatting.ParagraphProps)
	sb.WriteString("<w:r>")
	sb.WriteString(para.Formatting.RunProps)
	sb.WriteString(`<w:t xml:space="preserve">`)
	sb.WriteString(xmlEscaper.Replace(para.Text))
	sb.WriteString("</w:t></w:r></w:p>")
	return sb.String()
}
