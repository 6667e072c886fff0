// Package pipeline provides the high-level orchestration for one resume
// optimization run: input validation, gap analysis, document rebuild and
// output writing.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/enhancement"
	"github.com/jonathan/resume-optimizer/internal/gap"
	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/predict"
	"github.com/jonathan/resume-optimizer/internal/rebuild"
	"github.com/jonathan/resume-optimizer/internal/rendering"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Options holds the per-run inputs.
type Options struct {
	// ResumePath is the source .docx resume. Never modified by a run.
	ResumePath string
	// JobDescription is the target job description text.
	JobDescription string
	// OutputPath is where the rebuilt .docx is written. Empty skips writing.
	OutputPath string
	// Verbose enables per-stage logging.
	Verbose bool
}

// Pipeline runs optimizations. The predictor is an injected, lifecycle-scoped
// collaborator: constructed once, shared across runs, never global state.
// All per-run bookkeeping lives in a fresh RunState per invocation, so
// concurrent runs never observe each other's dedup sets.
type Pipeline struct {
	cfg       *config.Config
	predictor predict.Client
}

// New creates a pipeline. cfg may be nil for defaults; predictor may be nil
// for template-only operation.
func New(cfg *config.Config, predictor predict.Client) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Pipeline{cfg: cfg, predictor: predictor}
}

// Run executes one optimization. On success the result carries the rebuilt
// document and the insertion count; when extraction yields no usable
// keywords the original document is returned unchanged with a zero count.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*types.Result, error) {
	jobDescription := strings.TrimSpace(opts.JobDescription)
	if len(jobDescription) < p.cfg.MinJobDescriptionLength {
		return nil, &InputError{
			Field:   "job_description",
			Message: fmt.Sprintf("must be at least %d characters", p.cfg.MinJobDescriptionLength),
		}
	}

	doc, err := ingestion.ReadDocument(opts.ResumePath)
	if err != nil {
		return nil, &InputError{Field: "resume", Message: "unreadable source document", Cause: err}
	}

	resumeText := doc.Text()
	if strings.TrimSpace(resumeText) == "" {
		return nil, &InputError{Field: "resume", Message: "document contains no text"}
	}

	state := types.NewRunState()
	missing := gap.MissingKeywords(resumeText, jobDescription, state.Processed, p.cfg.MaxMissingKeywords)
	if opts.Verbose {
		log.Printf("[PIPELINE] missing keywords: %v", missing)
	}

	result := &types.Result{Document: doc}
	if len(missing) > 0 {
		enhancer := enhancement.NewEnhancer(
			p.predictor,
			p.cfg.DensityLimit,
			time.Duration(p.cfg.PredictTimeoutSeconds)*time.Second,
		)
		rebuilder := rebuild.New(enhancer, p.cfg.Budgets(), p.cfg.GlobalKeywordLimit)

		rebuilt, inserted := rebuilder.Rebuild(ctx, doc, missing, state)
		result.Document = rebuilt
		result.KeywordsAdded = state.KeywordsAdded
		result.InsertedKeywords = inserted
	} else if opts.Verbose {
		// Degraded extraction is not an error; the document passes through.
		log.Printf("[PIPELINE] no missing keywords, returning document unchanged")
	}

	if opts.OutputPath != "" {
		if err := rendering.WriteDocument(opts.ResumePath, result.Document, opts.OutputPath); err != nil {
			return nil, &OutputError{Path: opts.OutputPath, Message: "failed to write rebuilt document", Cause: err}
		}
		result.OutputPath = opts.OutputPath
	}

	if opts.Verbose {
		log.Printf("[PIPELINE] optimization complete: %d keywords added", result.KeywordsAdded)
	}
	return result, nil
}
