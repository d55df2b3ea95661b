package transcribe

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Defaults for the speech-to-text calls.
const (
	// DefaultModel is the Whisper transcription model.
	DefaultModel = openai.Whisper1

	// DefaultLanguage is the expected audio language (ISO 639-1).
	DefaultLanguage = "ja"
)

// Transcriber converts one audio file into text with optional segment
// timestamps.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (Result, error)
}

// audioTranscriber is the slice of the OpenAI client this package uses.
// *openai.Client implements it implicitly; tests inject mocks.
type audioTranscriber interface {
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

// Compile-time interface compliance checks.
var (
	_ Transcriber      = (*WhisperTranscriber)(nil)
	_ audioTranscriber = (*openai.Client)(nil)
)

// WhisperTranscriber transcribes audio through OpenAI's transcription
// API, always requesting verbose output so segment timestamps come back
// alongside the text.
type WhisperTranscriber struct {
	client   audioTranscriber
	model    string
	language string
}

// WhisperOption configures a WhisperTranscriber.
type WhisperOption func(*WhisperTranscriber)

// WithModel sets the transcription model.
func WithModel(model string) WhisperOption {
	return func(t *WhisperTranscriber) {
		if model != "" {
			t.model = model
		}
	}
}

// WithLanguage sets the audio language code.
func WithLanguage(language string) WhisperOption {
	return func(t *WhisperTranscriber) {
		if language != "" {
			t.language = language
		}
	}
}

// NewWhisperTranscriber creates a WhisperTranscriber backed by the given
// OpenAI client.
func NewWhisperTranscriber(client *openai.Client, opts ...WhisperOption) *WhisperTranscriber {
	t := &WhisperTranscriber{
		client:   client,
		model:    DefaultModel,
		language: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transcribe sends one audio file to the transcription API and maps the
// verbose response into a Result. A response without segments yields a
// Result with nil Segments.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	req := openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
		Language: t.language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("transcription request failed: %w", err)
	}

	result := Result{Text: resp.Text}
	if len(resp.Segments) > 0 {
		result.Segments = make([]Segment, 0, len(resp.Segments))
		for _, s := range resp.Segments {
			result.Segments = append(result.Segments, Segment{
				Start: s.Start,
				End:   s.End,
				Text:  s.Text,
			})
		}
	}
	return result, nil
}
