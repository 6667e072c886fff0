// Package predict provides the masked-token prediction service used to
// refine insertion templates. The service is optional: it may be absent,
// slow or return nothing, and callers must always fall back to the plain
// template path.
package predict

import "context"

// MaskToken is the placeholder the predictor fills in.
const MaskToken = "[MASK]"

// Client is an abstraction over masked-token prediction providers.
type Client interface {
	// Predict returns ranked candidate words for the MaskToken placeholder
	// in sentence, best first. An empty slice is a valid outcome.
	Predict(ctx context.Context, sentence string, topK int) ([]string, error)
	// Close releases any resources held by the client.
	Close() error
}
