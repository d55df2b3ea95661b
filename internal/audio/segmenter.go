// Package audio derives metadata from uploaded media files and splits
// oversized recordings into fixed-duration chunks for transcription.
package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/KYO678/MeetingSummarizer/internal/format"
)

// DefaultChunkDuration is the fixed segment length requested from ffmpeg.
// Five minutes of mono 16-bit 16kHz PCM stays well under the speech-to-text
// payload limit.
const DefaultChunkDuration = 5 * time.Minute

// chunkFilePattern is the output name template passed to ffmpeg's segment
// muxer. The zero-padded index embedded in each name is the authoritative
// playback order.
const chunkFilePattern = "chunk_%03d.wav"

// chunkFileRe extracts the embedded sequence index from an emitted chunk name.
var chunkFileRe = regexp.MustCompile(`^chunk_(\d+)\.wav$`)

// Chunk is one fixed-duration slice of the source audio.
// Chunks are exclusively owned by their producer until handed to the
// transcription orchestrator, which removes each file after use.
type Chunk struct {
	Index    int           // Zero-based position in playback order.
	Path     string        // Absolute path to the chunk file.
	Duration time.Duration // Nominal chunk duration (last chunk may be shorter on disk).
}

// String returns a human-readable representation for logging.
func (c Chunk) String() string {
	return fmt.Sprintf("chunk %d (%s)", c.Index, format.Duration(c.Duration))
}

// Segmenter splits an audio file into fixed-duration chunks using ffmpeg.
type Segmenter struct {
	ffmpegPath    string
	chunkDuration time.Duration

	cmd commandRunner
}

// SegmenterOption configures a Segmenter.
type SegmenterOption func(*Segmenter)

// WithChunkDuration sets the fixed segment length.
func WithChunkDuration(d time.Duration) SegmenterOption {
	return func(s *Segmenter) {
		if d > 0 {
			s.chunkDuration = d
		}
	}
}

// WithSegmenterCommandRunner sets the command runner (for testing).
func WithSegmenterCommandRunner(r commandRunner) SegmenterOption {
	return func(s *Segmenter) { s.cmd = r }
}

// NewSegmenter creates a Segmenter. ffmpegPath must be a resolved binary path.
func NewSegmenter(ffmpegPath string, opts ...SegmenterOption) (*Segmenter, error) {
	if ffmpegPath == "" {
		return nil, fmt.Errorf("ffmpegPath cannot be empty: %w", ErrSegmentationFailed)
	}

	s := &Segmenter{
		ffmpegPath:    ffmpegPath,
		chunkDuration: DefaultChunkDuration,
		cmd:           osCommandRunner{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ChunkDuration returns the configured fixed segment length.
func (s *Segmenter) ChunkDuration() time.Duration {
	return s.chunkDuration
}

// Split segments inputPath into outputDir and returns the chunks in
// ascending sequence order. The ordering comes from the index embedded in
// each emitted file name, never from directory enumeration order.
func (s *Segmenter) Split(ctx context.Context, inputPath, outputDir string) ([]Chunk, error) {
	// Re-encode to mono 16-bit PCM at 16kHz: the smallest representation
	// the speech-to-text service accepts without quality loss for voice.
	args := []string{
		"-i", inputPath,
		"-f", "segment",
		"-segment_time", strconv.Itoa(int(s.chunkDuration.Seconds())),
		"-c:a", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		filepath.Join(outputDir, chunkFilePattern),
	}

	if output, err := s.cmd.CombinedOutput(ctx, s.ffmpegPath, args); err != nil {
		return nil, fmt.Errorf("%w: ffmpeg exited abnormally: %v\nOutput: %s",
			ErrSegmentationFailed, err, string(output))
	}

	chunks, err := collectChunks(outputDir, s.chunkDuration)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: ffmpeg produced no chunks in %s", ErrSegmentationFailed, outputDir)
	}
	return chunks, nil
}

// collectChunks enumerates outputDir and sorts chunk files by their
// embedded index.
func collectChunks(outputDir string, chunkDuration time.Duration) ([]Chunk, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot enumerate chunk directory: %v", ErrSegmentationFailed, err)
	}

	var chunks []Chunk
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := chunkFileRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		chunks = append(chunks, Chunk{
			Index:    index,
			Path:     filepath.Join(outputDir, entry.Name()),
			Duration: chunkDuration,
		})
	}

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Index < chunks[j].Index })
	return chunks, nil
}
