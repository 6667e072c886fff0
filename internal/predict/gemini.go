package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used for fill-mask prediction.
const DefaultModel = "gemini-1.5-flash"

// GeminiClient implements Client on top of Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed prediction client. model may be
// empty to use DefaultModel.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Predict asks the model for candidate words filling the MaskToken slot.
func (c *GeminiClient) Predict(ctx context.Context, sentence string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = 5
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	prompt := buildFillMaskPrompt(sentence, topK)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate predictions: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}
	return ParsePredictions(text, topK)
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func buildFillMaskPrompt(sentence string, topK int) string {
	return fmt.Sprintf(`The following sentence contains the placeholder %s.
Suggest the %d most natural single words to fill it, most likely first.
Respond with a JSON array of lowercase words only, no explanations.

Sentence: %s`, MaskToken, topK, sentence)
}

// ParsePredictions parses the model response into usable candidate words.
// Multi-word or empty candidates are dropped.
func ParsePredictions(response string, topK int) ([]string, error) {
	cleaned := cleanJSONBlock(response)

	var words []string
	if err := json.Unmarshal([]byte(cleaned), &words); err != nil {
		return nil, fmt.Errorf("failed to parse predictions: %w", err)
	}

	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" || strings.ContainsRune(w, ' ') {
			continue
		}
		out = append(out, strings.ToLower(w))
		if len(out) == topK {
			break
		}
	}
	return out, nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code block wrappers the model sometimes
// adds despite instructions.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
