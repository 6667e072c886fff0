package types

import "strings"

// RunState is the per-invocation bookkeeping for one optimization run.
// It must be instantiated fresh for every document; two documents processed
// in parallel must never share an instance, since the processed set is what
// prevents a keyword from being inserted twice.
type RunState struct {
	// Processed holds the case-normalized form of every keyword already
	// inserted during this run.
	Processed map[string]struct{}
	// KeywordsAdded counts insertions across the whole document.
	KeywordsAdded int
	// SectionKeywordsUsed counts insertions since the last section header.
	SectionKeywordsUsed int
}

// NewRunState returns an empty run state.
func NewRunState() *RunState {
	return &RunState{Processed: make(map[string]struct{})}
}

// MarkProcessed records a keyword as inserted.
func (s *RunState) MarkProcessed(keyword string) {
	s.Processed[strings.ToLower(strings.TrimSpace(keyword))] = struct{}{}
}

// IsProcessed reports whether a keyword was already inserted during this run.
func (s *RunState) IsProcessed(keyword string) bool {
	_, ok := s.Processed[strings.ToLower(strings.TrimSpace(keyword))]
	return ok
}

// ResetSection resets the per-section insertion counter. Called by the
// rebuilder whenever a new section header is encountered.
func (s *RunState) ResetSection() {
	s.SectionKeywordsUsed = 0
}
