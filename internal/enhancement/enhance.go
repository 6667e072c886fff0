package enhancement

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/jonathan/resume-optimizer/internal/predict"
	"github.com/jonathan/resume-optimizer/internal/types"
)

const (
	// predictionCandidates is how many fill-mask candidates are requested.
	predictionCandidates = 5
	// minPredictionLength filters out degenerate single-letter predictions.
	minPredictionLength = 3
)

// DefaultPredictTimeout bounds one prediction-service call.
const DefaultPredictTimeout = 10 * time.Second

// Enhancer augments paragraph text with missing keywords. The predictor is
// an injected, optional collaborator: when it is nil, fails, times out or
// returns nothing usable, the deterministic template path is used instead.
type Enhancer struct {
	predictor      predict.Client
	densityLimit   float64
	predictTimeout time.Duration
}

// NewEnhancer creates an enhancer. predictor may be nil for template-only
// operation; densityLimit <= 0 selects DefaultDensityLimit.
func NewEnhancer(predictor predict.Client, densityLimit float64, predictTimeout time.Duration) *Enhancer {
	if densityLimit <= 0 {
		densityLimit = DefaultDensityLimit
	}
	if predictTimeout <= 0 {
		predictTimeout = DefaultPredictTimeout
	}
	return &Enhancer{
		predictor:      predictor,
		densityLimit:   densityLimit,
		predictTimeout: predictTimeout,
	}
}

// DensityLimit returns the configured density ceiling.
func (e *Enhancer) DensityLimit() float64 {
	return e.densityLimit
}

// Enhance appends a keyword-bearing sentence to a paragraph. It returns the
// (possibly unchanged) text and whether an insertion happened. On insertion
// the keyword is marked processed and the global counter is incremented;
// per-section counting is the caller's responsibility.
func (e *Enhancer) Enhance(ctx context.Context, paragraph, keyword string, section types.SectionType, state *types.RunState) (string, bool) {
	trimmed := strings.TrimSpace(paragraph)
	if trimmed == "" || keyword == "" {
		return paragraph, false
	}
	if containsFold(paragraph, keyword) {
		return paragraph, false
	}
	if !AllowsInsertion(paragraph, keyword, e.densityLimit) {
		return paragraph, false
	}

	sentence := TemplateSentence(section, keyword, len(strings.Fields(paragraph)))
	sentence = e.refine(ctx, sentence, keyword)

	newText := strings.TrimRight(paragraph, " ")
	if !endsWithTerminator(newText) {
		newText += "."
	}
	newText += " " + sentence

	state.MarkProcessed(keyword)
	state.KeywordsAdded++
	return newText, true
}

// refine asks the prediction service for a single-word substitution of the
// template's leading word. Any failure falls back to the template sentence;
// refinement never aborts a run.
func (e *Enhancer) refine(ctx context.Context, sentence, keyword string) string {
	if e.predictor == nil {
		return sentence
	}

	masked := MaskSentence(sentence)
	if masked == sentence {
		return sentence
	}

	ctx, cancel := context.WithTimeout(ctx, e.predictTimeout)
	defer cancel()

	candidates, err := e.predictor.Predict(ctx, masked, predictionCandidates)
	if err != nil {
		log.Printf("[ENHANCE] prediction failed for %q, using template: %v", keyword, err)
		return sentence
	}

	for _, word := range candidates {
		if usablePrediction(word, keyword) {
			return strings.Replace(masked, predict.MaskToken, capitalize(word), 1)
		}
	}
	return sentence
}

// usablePrediction accepts alphabetic words long enough to read naturally
// and distinct from the keyword itself.
func usablePrediction(word, keyword string) bool {
	if len(word) < minPredictionLength {
		return false
	}
	if strings.EqualFold(word, keyword) {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// containsFold reports whether text contains keyword, case-insensitively.
func containsFold(text, keyword string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(keyword))
}

func endsWithTerminator(text string) bool {
	if text == "" {
		return false
	}
	switch text[len(text)-1] {
	case '.', '!', '?', ':', ';':
		return true
	}
	return false
}
