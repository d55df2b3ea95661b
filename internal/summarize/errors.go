package summarize

import "errors"

// Sentinel errors for the summarize package.
var (
	// ErrEmptyTranscript indicates there is nothing to summarize.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrSummaryFailed indicates the model call failed or returned nothing.
	ErrSummaryFailed = errors.New("summary generation failed")
)
