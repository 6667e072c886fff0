package ingestion

import (
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/resume-optimizer/internal/types"
)

var (
	// paragraphRe matches one WordprocessingML paragraph, self-closing or not.
	// The self-closing alternative must come first so empty paragraphs match.
	paragraphRe = regexp.MustCompile(`(?s)<w:p\b[^>]*/>|<w:p\b.*?</w:p>`)
	textRunRe   = regexp.MustCompile(`(?s)<w:t\b[^>]*>(.*?)</w:t>`)
	paraPropsRe = regexp.MustCompile(`(?s)<w:pPr\b[^>]*>.*?</w:pPr>`)
	runPropsRe  = regexp.MustCompile(`(?s)<w:rPr\b[^>]*>.*?</w:rPr>`)
	breakRe     = regexp.MustCompile(`<w:(?:tab|br)\b[^>]*/>`)

	xmlUnescaper = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&amp;", "&",
	)
)

// ReadDocument reads a .docx resume into the ordered paragraph model.
// Each paragraph carries its raw markup as the opaque formatting bag so the
// writer can copy attributes positionally.
func ReadDocument(path string) (*types.Document, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return nil, &SourceError{Path: path, Message: "failed to open document", Cause: err}
	}
	defer r.Close()

	return ParseDocumentXML(r.Editable().GetContent()), nil
}

// ParseDocumentXML splits WordprocessingML body content into paragraphs.
func ParseDocumentXML(content string) *types.Document {
	spans := paragraphRe.FindAllString(content, -1)
	doc := &types.Document{Paragraphs: make([]types.Paragraph, 0, len(spans))}
	for _, span := range spans {
		doc.Paragraphs = append(doc.Paragraphs, types.Paragraph{
			Text: ParagraphText(span),
			Formatting: types.Formatting{
				Raw:            span,
				ParagraphProps: paraPropsRe.FindString(span),
				RunProps:       runPropsRe.FindString(span),
			},
		})
	}
	return doc
}

// ParagraphText extracts the plain text of one paragraph span. Tabs and line
// breaks inside the paragraph become single spaces.
func ParagraphText(span string) string {
	span = breakRe.ReplaceAllString(span, "<w:t> </w:t>")
	matches := textRunRe.FindAllStringSubmatch(span, -1)
	var sb strings.Builder
	for _, m := range matches {
		sb.WriteString(xmlUnescaper.Replace(m[1]))
	}
	return sb.String()
}
