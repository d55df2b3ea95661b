package summarize

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the Gemini model used when none is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// generateFunc issues a single Gemini generation call. The default
// implementation creates a client per call; tests substitute their own.
type generateFunc func(ctx context.Context, apiKey, model, prompt string) (string, error)

// Compile-time interface compliance check.
var _ Summarizer = (*GeminiSummarizer)(nil)

// GeminiSummarizer generates meeting minutes via the Gemini API.
type GeminiSummarizer struct {
	apiKey   string
	model    string
	generate generateFunc
}

// GeminiOption configures a GeminiSummarizer.
type GeminiOption func(*GeminiSummarizer)

// WithGeminiModel sets the generation model.
func WithGeminiModel(model string) GeminiOption {
	return func(s *GeminiSummarizer) {
		if model != "" {
			s.model = model
		}
	}
}

// NewGeminiSummarizer creates a GeminiSummarizer using the given API key.
func NewGeminiSummarizer(apiKey string, opts ...GeminiOption) *GeminiSummarizer {
	s := &GeminiSummarizer{
		apiKey:   apiKey,
		model:    DefaultGeminiModel,
		generate: generateGemini,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize produces meeting minutes from the transcript.
func (s *GeminiSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	prompt := systemPrompt + "\n\n" + userPromptHeader + transcript

	text, err := s.generate(ctx, s.apiKey, s.model, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummaryFailed, err)
	}

	return strings.TrimSpace(text), nil
}

// generateGemini creates a client and issues one generation call.
func generateGemini(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return text.String(), nil
}
