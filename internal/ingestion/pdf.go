package ingestion

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// ReadPDFText extracts the plain text of a PDF file, page by page.
// Used for job descriptions supplied as PDF attachments.
func ReadPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", &SourceError{Path: path, Message: "failed to open PDF", Cause: err}
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages rather than failing the whole file.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", &SourceError{Path: path, Message: "no text content extracted from PDF"}
	}
	return sb.String(), nil
}
