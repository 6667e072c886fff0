package rendering

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-optimizer/internal/classification"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// LibreOfficeRenderer shells out to soffice for docx-to-PDF conversion.
type LibreOfficeRenderer struct {
	Binary string
}

// NewLibreOfficeRenderer creates the converter. binary may be empty to use
// "soffice" from PATH.
func NewLibreOfficeRenderer(binary string) *LibreOfficeRenderer {
	if binary == "" {
		binary = "soffice"
	}
	return &LibreOfficeRenderer{Binary: binary}
}

func (r *LibreOfficeRenderer) Name() string { return "libreoffice" }

// Render converts req.DocxPath to PDF. soffice names its output after the
// input basename, so the file is moved to req.PDFPath afterwards.
func (r *LibreOfficeRenderer) Render(ctx context.Context, req RenderRequest) error {
	if req.DocxPath == "" {
		return fmt.Errorf("no docx path provided")
	}

	outDir := filepath.Dir(req.PDFPath)
	cmd := exec.CommandContext(ctx, r.Binary,
		"--headless", "--convert-to", "pdf", "--outdir", outDir, req.DocxPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("soffice conversion failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	base := strings.TrimSuffix(filepath.Base(req.DocxPath), filepath.Ext(req.DocxPath))
	produced := filepath.Join(outDir, base+".pdf")
	if produced == req.PDFPath {
		return nil
	}
	if err := os.Rename(produced, req.PDFPath); err != nil {
		return fmt.Errorf("failed to move converted PDF: %w", err)
	}
	return nil
}

// ChromeRenderer prints an HTML rendering of the document to PDF with a
// headless Chrome instance. Requires Chrome/Chromium on the system.
type ChromeRenderer struct {
	Timeout time.Duration
}

// NewChromeRenderer creates the renderer. timeout <= 0 defaults to 60s.
func NewChromeRenderer(timeout time.Duration) *ChromeRenderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromeRenderer{Timeout: timeout}
}

func (r *ChromeRenderer) Name() string { return "chrome" }

func (r *ChromeRenderer) Render(ctx context.Context, req RenderRequest) error {
	if req.Document == nil {
		return fmt.Errorf("no document provided")
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, r.Timeout)
	defer cancel()

	html := documentHTML(req.Document)
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(false).Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("chrome print failed: %w", err)
	}

	if err := os.WriteFile(req.PDFPath, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// documentHTML renders the paragraph sequence as minimal printable HTML.
// Section headers are emphasized; everything else is a plain paragraph.
func documentHTML(doc *types.Document) string {
	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8">`)
	sb.WriteString(`<style>body{font-family:Helvetica,Arial,sans-serif;font-size:11pt;margin:1in;}h2{font-size:12pt;margin:14px 0 4px;}p{margin:4px 0;}</style>`)
	sb.WriteString("</head><body>")
	for _, para := range doc.Paragraphs {
		text := strings.TrimSpace(para.Text)
		if text == "" {
			continue
		}
		escaped := xmlEscaper.Replace(text)
		if classification.IsHeader(text) {
			sb.WriteString("<h2>" + escaped + "</h2>")
		} else {
			sb.WriteString("<p>" + escaped + "</p>")
		}
	}
	sb.WriteString("</body></html>")
	return sb.String()
}
