package summarize

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Default OpenAI configuration.
const (
	DefaultOpenAIModel = openai.GPT4o

	// defaultTemperature keeps minutes factual while leaving room for
	// natural phrasing.
	defaultTemperature float32 = 0.3
)

// chatCompleter is an internal interface for OpenAI chat completion.
// *openai.Client implements this implicitly.
// This allows injecting mocks in tests.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Compile-time interface compliance checks.
var (
	_ chatCompleter = (*openai.Client)(nil)
	_ Summarizer    = (*OpenAISummarizer)(nil)
)

// OpenAISummarizer generates meeting minutes via OpenAI's chat
// completion API.
type OpenAISummarizer struct {
	client      chatCompleter
	model       string
	temperature float32
}

// OpenAIOption configures an OpenAISummarizer.
type OpenAIOption func(*OpenAISummarizer)

// WithOpenAIModel sets the chat-completion model.
func WithOpenAIModel(model string) OpenAIOption {
	return func(s *OpenAISummarizer) {
		if model != "" {
			s.model = model
		}
	}
}

// NewOpenAISummarizer creates an OpenAISummarizer with the given client.
func NewOpenAISummarizer(client *openai.Client, opts ...OpenAIOption) *OpenAISummarizer {
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

// Summarize produces meeting minutes from the transcript.
// An empty or whitespace-only transcript returns ErrEmptyTranscript
// without calling the API.
func (s *OpenAISummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPromptHeader + transcript,
			},
		},
		Temperature: s.temperature,
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummaryFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrSummaryFailed)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
