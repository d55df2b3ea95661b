package transcribe

// Exports for testing. These allow black-box tests to inject dependencies
// without widening the public API.

// NewTestWhisperTranscriber creates a WhisperTranscriber with a mock
// audioTranscriber instead of a real OpenAI client.
func NewTestWhisperTranscriber(client audioTranscriber, opts ...WhisperOption) *WhisperTranscriber {
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
