// Package rebuild walks the source paragraph sequence, applies section
// classification and contextual enhancement, and reconstructs the ordered
// output document. The rebuild is a single linear pass with no backtracking;
// the output always has the same paragraph count as the input.
package rebuild

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/classification"
	"github.com/jonathan/resume-optimizer/internal/enhancement"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// DefaultGlobalLimit is the hard ceiling on insertions per run.
const DefaultGlobalLimit = 15

// DefaultBudgets is the per-section insertion ceiling. Sections not listed
// use the SectionOther budget.
var DefaultBudgets = map[types.SectionType]int{
	types.SectionSkills:     8,
	types.SectionExperience: 5,
	types.SectionProjects:   4,
	types.SectionSummary:    3,
	types.SectionOther:      2,
}

// Rebuilder reconstructs documents with keywords inserted.
type Rebuilder struct {
	enhancer    *enhancement.Enhancer
	budgets     map[types.SectionType]int
	globalLimit int
}

// New creates a rebuilder. budgets may be nil to use DefaultBudgets;
// globalLimit <= 0 selects DefaultGlobalLimit.
func New(enhancer *enhancement.Enhancer, budgets map[types.SectionType]int, globalLimit int) *Rebuilder {
	if budgets == nil {
		budgets = DefaultBudgets
	}
	if globalLimit <= 0 {
		globalLimit = DefaultGlobalLimit
	}
	return &Rebuilder{enhancer: enhancer, budgets: budgets, globalLimit: globalLimit}
}

// Rebuild emits the output document in source order. Empty paragraphs and
// headers are copied verbatim; headers switch the current section and reset
// the per-section counter. Content paragraphs receive keywords from queue,
// bounded by the section budget and the global ceiling. Returns the new
// document and the keywords inserted, in insertion order.
func (r *Rebuilder) Rebuild(ctx context.Context, doc *types.Document, queue []string, state *types.RunState) (*types.Document, []string) {
	out := &types.Document{Paragraphs: make([]types.Paragraph, 0, len(doc.Paragraphs))}
	var inserted []string

	current := types.SectionOther
	headerSeen := false

	for _, para := range doc.Paragraphs {
		if strings.TrimSpace(para.Text) == "" {
			out.Paragraphs = append(out.Paragraphs, para)
			continue
		}

		if section, ok := classification.HeaderSection(para.Text); ok {
			current = section
			headerSeen = true
			state.ResetSection()
			out.Paragraphs = append(out.Paragraphs, para)
			continue
		}

		section := current
		if !headerSeen {
			// No header yet; classify the paragraph by its own content.
			section = classification.Classify(para.Text)
		}

		newText, added := r.enhanceParagraph(ctx, para.Text, section, queue, state)
		inserted = append(inserted, added...)
		newText = DeduplicateSentences(newText)

		out.Paragraphs = append(out.Paragraphs, types.Paragraph{
			Text:       newText,
			Formatting: para.Formatting,
		})
	}
	return out, inserted
}

// enhanceParagraph inserts queue keywords into one content paragraph until
// the section budget or the global ceiling is hit.
func (r *Rebuilder) enhanceParagraph(ctx context.Context, text string, section types.SectionType, queue []string, state *types.RunState) (string, []string) {
	budget := r.budgetFor(section)
	var added []string

	for _, keyword := range queue {
		if state.SectionKeywordsUsed >= budget || state.KeywordsAdded >= r.globalLimit {
			break
		}
		if state.IsProcessed(keyword) {
			continue
		}
		if containsFold(text, keyword) {
			continue
		}

		var ok bool
		if section == types.SectionSkills {
			text, ok = r.appendSkill(text, keyword, state)
		} else {
			text, ok = r.enhancer.Enhance(ctx, text, keyword, section, state)
		}
		if ok {
			state.SectionKeywordsUsed++
			added = append(added, keyword)
		}
	}
	return text, added
}

// appendSkill extends a delimiter-separated skill list instead of appending
// a templated sentence, reusing whatever delimiter the list already has.
func (r *Rebuilder) appendSkill(text, keyword string, state *types.RunState) (string, bool) {
	if !enhancement.AllowsInsertion(text, keyword, r.enhancer.DensityLimit()) {
		return text, false
	}

	delimiter := detectDelimiter(text)
	newText := strings.TrimRight(text, " .") + delimiter + keyword

	state.MarkProcessed(keyword)
	state.KeywordsAdded++
	return newText, true
}

func (r *Rebuilder) budgetFor(section types.SectionType) int {
	if budget, ok := r.budgets[section]; ok {
		return budget
	}
	return r.budgets[types.SectionOther]
}

// detectDelimiter returns the list delimiter already used by a skills
// paragraph, defaulting to a comma.
func detectDelimiter(text string) string {
	switch {
	case strings.Contains(text, "|"):
		return " | "
	case strings.Contains(text, "•"):
		return " • "
	case strings.Contains(text, ";"):
		return "; "
	default:
		return ", "
	}
}

var sentenceSplitRe = regexp.MustCompile(`(?s)(.*?[.!?])(?:\s+|$)`)
var sentenceKeyRe = regexp.MustCompile(`[^a-z0-9 ]+`)

// DeduplicateSentences removes near-identical sentences from a paragraph,
// comparing case- and punctuation-insensitively. The first occurrence wins.
func DeduplicateSentences(text string) string {
	sentences := splitSentences(text)
	if len(sentences) < 2 {
		return text
	}

	seen := make(map[string]struct{}, len(sentences))
	kept := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		key := sentenceKey(sentence)
		if key == "" {
			kept = append(kept, sentence)
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, sentence)
	}
	return strings.Join(kept, " ")
}

// splitSentences splits on terminal punctuation, keeping the terminators.
// Trailing text without a terminator is kept as a final sentence.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	matches := sentenceSplitRe.FindAllStringSubmatch(text, -1)

	var sentences []string
	consumed := 0
	for _, m := range matches {
		sentences = append(sentences, strings.TrimSpace(m[1]))
		consumed += len(m[0])
	}
	if rest := strings.TrimSpace(text[consumed:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func sentenceKey(sentence string) string {
	key := strings.ToLower(sentence)
	key = sentenceKeyRe.ReplaceAllString(key, "")
	return strings.Join(strings.Fields(key), " ")
}

func containsFold(text, keyword string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(keyword))
}
