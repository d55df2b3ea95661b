package summarize

import "context"

// Exports for testing. These allow black-box tests to inject dependencies
// without widening the public API.

// NewTestOpenAISummarizer creates an OpenAISummarizer with a mock
// chatCompleter instead of a real OpenAI client.
func NewTestOpenAISummarizer(client chatCompleter, opts ...OpenAIOption) *OpenAISummarizer {
	s := &OpenAISummarizer{
		client:      client,
		model:       DefaultOpenAIModel,
		temperature: defaultTemperature,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTestGeminiSummarizer creates a GeminiSummarizer whose generation
// call is replaced by the given function.
func NewTestGeminiSummarizer(generate func(ctx context.Context, apiKey, model, prompt string) (string, error)) *GeminiSummarizer {
	return &GeminiSummarizer{
		apiKey:   "test-key",
		model:    DefaultGeminiModel,
		generate: generate,
	}
}
