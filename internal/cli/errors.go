package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrAPIKeyMissing indicates OPENAI_API_KEY environment variable is not set.
	ErrAPIKeyMissing = errors.New("OPENAI_API_KEY environment variable not set")

	// ErrGeminiKeyMissing indicates GEMINI_API_KEY is required but not set.
	ErrGeminiKeyMissing = errors.New("GEMINI_API_KEY environment variable not set")

	// ErrNotionNotConfigured indicates --publish was requested without
	// Notion credentials.
	ErrNotionNotConfigured = errors.New("NOTION_API_KEY and a database id are required for publishing")

	// ErrUnsupportedProvider indicates an unknown summary provider.
	ErrUnsupportedProvider = errors.New("unsupported summary provider")

	// ErrUnsupportedFormat indicates an audio file has an unsupported extension.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrFileNotFound indicates the specified input file does not exist.
	ErrFileNotFound = errors.New("file not found")
)
