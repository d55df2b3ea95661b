// Package transcribe converts recorded audio into a timestamped
// transcript, splitting oversized inputs into chunks and reconciling
// per-chunk timestamps into one continuous timeline.
package transcribe

import "fmt"

// Segment is a timestamped span of transcribed text. Times are seconds
// on the job-level timeline once offset correction has been applied.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// String returns a human-readable representation for logging.
func (s Segment) String() string {
	return fmt.Sprintf("[%.2fs - %.2fs]", s.Start, s.End)
}

// Result is one speech-to-text response. Segments is nil when the
// service omitted timestamp information; callers must treat that as a
// valid response, not an error.
type Result struct {
	Text     string
	Segments []Segment
}

// Transcript is the assembled output of one transcription job.
// It is created once per job and immutable thereafter.
type Transcript struct {
	// FullText is the newline-joined text of every successfully
	// transcribed chunk, in chunk order.
	FullText string

	// Segments carries offset-corrected segments in chunk order.
	// Chunks that failed transcription contribute nothing.
	Segments []Segment

	// FailedChunks lists the sequence indices of chunks whose
	// speech-to-text call failed and was skipped.
	FailedChunks []int
}

// Empty reports whether the job yielded no usable text at all.
func (t Transcript) Empty() bool {
	return t.FullText == "" && len(t.Segments) == 0
}
