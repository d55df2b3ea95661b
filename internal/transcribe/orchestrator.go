package transcribe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KYO678/MeetingSummarizer/internal/audio"
	"github.com/KYO678/MeetingSummarizer/internal/format"
	"github.com/KYO678/MeetingSummarizer/internal/logger"
)

// DefaultSizeLimit is the largest payload sent to the speech-to-text
// service in a single call: 25 MiB, the Whisper API request limit.
const DefaultSizeLimit int64 = 25 * 1024 * 1024

// Segmenter splits an audio file into ordered fixed-duration chunks.
type Segmenter interface {
	Split(ctx context.Context, inputPath, outputDir string) ([]audio.Chunk, error)
	ChunkDuration() time.Duration
}

// Compile-time interface compliance check.
var _ Segmenter = (*audio.Segmenter)(nil)

// Orchestrator decides between single-call and chunked transcription
// based on payload size and reconciles per-chunk timestamps into one
// continuous timeline.
//
// Chunk calls are issued strictly sequentially in ascending sequence
// order: offset correction depends on each chunk's position, and
// sequential calls keep rate-limit accounting trivial.
type Orchestrator struct {
	transcriber Transcriber
	segmenter   Segmenter // nil when no transcoding tool is available
	sizeLimit   int64
	log         logger.Logger

	stat    fileStatter
	tempDir tempDirCreator
	files   fileRemover
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithSizeLimit sets the single-call payload limit in bytes.
func WithSizeLimit(limit int64) OrchestratorOption {
	return func(o *Orchestrator) {
		if limit > 0 {
			o.sizeLimit = limit
		}
	}
}

// WithLogger sets the progress logger.
func WithLogger(log logger.Logger) OrchestratorOption {
	return func(o *Orchestrator) { o.log = log }
}

// WithStatter sets the file statter (for testing).
func WithStatter(s fileStatter) OrchestratorOption {
	return func(o *Orchestrator) { o.stat = s }
}

// WithTempDirCreator sets the temp directory creator (for testing).
func WithTempDirCreator(t tempDirCreator) OrchestratorOption {
	return func(o *Orchestrator) { o.tempDir = t }
}

// WithFileRemover sets the file remover (for testing).
func WithFileRemover(f fileRemover) OrchestratorOption {
	return func(o *Orchestrator) { o.files = f }
}

// NewOrchestrator creates an Orchestrator. A nil segmenter is valid and
// means segmentation capability is absent; oversized inputs will then
// fail with ErrSegmenterUnavailable.
func NewOrchestrator(transcriber Transcriber, segmenter Segmenter, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		transcriber: transcriber,
		segmenter:   segmenter,
		sizeLimit:   DefaultSizeLimit,
		log:         logger.Default(),
		stat:        osFileStatter{},
		tempDir:     osTempDirCreator{},
		files:       osFileRemover{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Transcribe converts the audio file at path into a Transcript.
//
// Inputs at or under the size limit go to the speech-to-text service in
// one verbose call and the response is returned as-is. Larger inputs are
// segmented and transcribed chunk by chunk; a failing chunk is recorded
// and skipped, never aborting the job. If every chunk fails, the result
// is an empty Transcript, not an error.
func (o *Orchestrator) Transcribe(ctx context.Context, path string) (Transcript, error) {
	info, err := o.stat.Stat(path)
	if err != nil {
		return Transcript{}, fmt.Errorf("cannot stat input file: %w", err)
	}

	if info.Size() <= o.sizeLimit {
		result, err := o.transcriber.Transcribe(ctx, path)
		if err != nil {
			// Single-call path: a failure here means no transcript at all.
			return Transcript{}, err
		}
		return Transcript{FullText: result.Text, Segments: result.Segments}, nil
	}

	o.log.Info(ctx, "input is %s, above the %s single-call limit; splitting into chunks",
		format.Size(info.Size()), format.Size(o.sizeLimit))

	if o.segmenter == nil {
		return Transcript{}, ErrSegmenterUnavailable
	}

	return o.transcribeChunked(ctx, path)
}

// transcribeChunked segments the input and walks the chunks in ascending
// sequence order, correcting each chunk's timestamps onto the job
// timeline. Chunk files and the working directory are scoped resources:
// removed at the next reachable point after last use, failures swallowed.
func (o *Orchestrator) transcribeChunked(ctx context.Context, path string) (Transcript, error) {
	workDir, err := o.tempDir.MkdirTemp("", "minutes-chunks-*")
	if err != nil {
		return Transcript{}, fmt.Errorf("cannot create chunk directory: %w", err)
	}
	defer func() { _ = o.files.RemoveAll(workDir) }()

	chunks, err := o.segmenter.Split(ctx, path, workDir)
	if err != nil {
		return Transcript{}, err
	}

	chunkSeconds := o.segmenter.ChunkDuration().Seconds()

	var (
		fullText strings.Builder
		segments []Segment
		failed   []int
	)

	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return Transcript{}, err
		}

		o.logChunkProgress(ctx, chunk, len(chunks))

		result, err := o.transcriber.Transcribe(ctx, chunk.Path)
		if err != nil {
			o.log.Error(ctx, "chunk %d failed, skipping: %v", chunk.Index, err)
			failed = append(failed, chunk.Index)
		} else {
			fullText.WriteString(result.Text)
			fullText.WriteString("\n")

			offset := float64(chunk.Index) * chunkSeconds
			for _, seg := range result.Segments {
				seg.Start += offset
				seg.End += offset
				segments = append(segments, seg)
			}
		}

		_ = o.files.Remove(chunk.Path)
	}

	return Transcript{
		FullText:     fullText.String(),
		Segments:     segments,
		FailedChunks: failed,
	}, nil
}

func (o *Orchestrator) logChunkProgress(ctx context.Context, chunk audio.Chunk, total int) {
	if info, err := o.stat.Stat(chunk.Path); err == nil {
		o.log.Info(ctx, "transcribing chunk %d/%d (%s)", chunk.Index+1, total, format.Size(info.Size()))
	} else {
		o.log.Info(ctx, "transcribing chunk %d/%d", chunk.Index+1, total)
	}
}
