package rendering

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// RenderRequest carries everything a PDF strategy might need: the logical
// document for HTML-based renderers and the written .docx for converters
// that work on the file.
type RenderRequest struct {
	Document *types.Document
	DocxPath string
	PDFPath  string
}

// PDFRenderer is one fixed-layout rendering strategy.
type PDFRenderer interface {
	Name() string
	Render(ctx context.Context, req RenderRequest) error
}

// Chain tries renderers in order; the first success wins.
type Chain []PDFRenderer

// DefaultChain returns the standard strategy order: LibreOffice conversion
// first, headless Chrome as the fallback.
func DefaultChain() Chain {
	return Chain{NewLibreOfficeRenderer(""), NewChromeRenderer(0)}
}

// Render runs the chain. It returns nil on the first successful strategy
// and a RenderError naming every failed strategy once all are exhausted.
func (c Chain) Render(ctx context.Context, req RenderRequest) error {
	if len(c) == 0 {
		return &RenderError{Message: "no render strategies configured"}
	}

	var failures []string
	for _, renderer := range c {
		err := renderer.Render(ctx, req)
		if err == nil {
			return nil
		}
		log.Printf("[RENDER] strategy %s failed: %v", renderer.Name(), err)
		failures = append(failures, fmt.Sprintf("%s: %v", renderer.Name(), err))
	}
	return &RenderError{Message: "all strategies failed: " + strings.Join(failures, "; ")}
}
