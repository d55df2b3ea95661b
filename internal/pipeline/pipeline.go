// Package pipeline runs one minutes job end to end: metadata, spooling,
// transcription, rendering, summarization, export, and optional
// publishing. One job at a time; every stage blocks until done.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KYO678/MeetingSummarizer/internal/audio"
	"github.com/KYO678/MeetingSummarizer/internal/logger"
	"github.com/KYO678/MeetingSummarizer/internal/notion"
	"github.com/KYO678/MeetingSummarizer/internal/render"
	"github.com/KYO678/MeetingSummarizer/internal/summarize"
	"github.com/KYO678/MeetingSummarizer/internal/transcribe"
)

// DefaultTitle is used when a job does not name its meeting.
const DefaultTitle = "Meeting Minutes"

// metadataExtractor derives filename and creation date for the input.
// It does not fail; probing problems degrade inside the extractor.
type metadataExtractor interface {
	Extract(ctx context.Context, path string) audio.Metadata
}

// transcriptionOrchestrator produces the transcript for an audio file.
type transcriptionOrchestrator interface {
	Transcribe(ctx context.Context, path string) (transcribe.Transcript, error)
}

// publisher writes the minutes to the document store. Publishing is
// non-fatal, so it reports a message instead of an error.
type publisher interface {
	Publish(ctx context.Context, req notion.Request) string
}

// Compile-time interface compliance checks.
var (
	_ metadataExtractor         = (*audio.Prober)(nil)
	_ transcriptionOrchestrator = (*transcribe.Orchestrator)(nil)
	_ publisher                 = (*notion.Publisher)(nil)
)

// Request describes one minutes job.
type Request struct {
	InputPath string
	Title     string
	Docx      bool
}

// Result is everything a finished job produced.
type Result struct {
	JobID          string
	Title          string
	Transcript     transcribe.Transcript
	Document       string
	Summary        string
	ExportPath     string
	DocxPath       string
	PublishMessage string
}

// Pipeline wires the stages of a minutes job together.
type Pipeline struct {
	transcriber transcriptionOrchestrator
	summarizer  summarize.Summarizer
	prober      metadataExtractor // nil means probing is skipped
	publisher   publisher         // nil means publishing is skipped
	outputDir   string
	log         logger.Logger

	fs        fileSystem
	newID     func() string
	now       func() time.Time
	writeDocx func(title, markdown, path string) error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProber sets the metadata extractor.
func WithProber(p metadataExtractor) Option {
	return func(pl *Pipeline) { pl.prober = p }
}

// WithPublisher enables publishing to the document store.
func WithPublisher(p publisher) Option {
	return func(pl *Pipeline) { pl.publisher = p }
}

// WithOutputDir sets the directory export files are written to.
func WithOutputDir(dir string) Option {
	return func(pl *Pipeline) {
		if dir != "" {
			pl.outputDir = dir
		}
	}
}

// WithLogger sets the progress logger.
func WithLogger(log logger.Logger) Option {
	return func(pl *Pipeline) { pl.log = log }
}

// WithClock sets the time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(pl *Pipeline) { pl.now = now }
}

// WithIDGenerator sets the job id source (for testing).
func WithIDGenerator(newID func() string) Option {
	return func(pl *Pipeline) { pl.newID = newID }
}

// WithFileSystem sets the file system (for testing).
func WithFileSystem(fs fileSystem) Option {
	return func(pl *Pipeline) { pl.fs = fs }
}

// WithDocxWriter sets the docx renderer (for testing).
func WithDocxWriter(write func(title, markdown, path string) error) Option {
	return func(pl *Pipeline) { pl.writeDocx = write }
}

// New creates a Pipeline around the two stages every job needs.
func New(transcriber transcriptionOrchestrator, summarizer summarize.Summarizer, opts ...Option) *Pipeline {
	p := &Pipeline{
		transcriber: transcriber,
		summarizer:  summarizer,
		outputDir:   "output",
		log:         logger.Default(),
		fs:          osFileSystem{},
		newID:       uuid.NewString,
		now:         time.Now,
		writeDocx:   render.WriteDocx,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one job. Transcription and summarization failures are
// fatal; export and publish problems after that point are reported in
// the result or as an error, with the transcript already preserved in
// the returned Result where possible.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	result := Result{
		JobID: p.newID(),
		Title: req.Title,
	}
	if result.Title == "" {
		result.Title = DefaultTitle
	}

	p.log.Info(ctx, "job %s: processing %s", result.JobID, req.InputPath)

	meta := p.extractMetadata(ctx, req.InputPath)

	spooled, cleanup, err := p.spool(result.JobID, req.InputPath)
	if err != nil {
		return result, err
	}
	defer cleanup(ctx)

	transcript, err := p.transcriber.Transcribe(ctx, spooled)
	if err != nil {
		return result, fmt.Errorf("transcription: %w", err)
	}
	result.Transcript = transcript
	result.Document = render.Document(transcript)

	if n := len(transcript.FailedChunks); n > 0 {
		p.log.Warn(ctx, "job %s: %d chunk(s) failed and are missing from the transcript: %v",
			result.JobID, n, transcript.FailedChunks)
	}

	summary, err := p.summarizer.Summarize(ctx, transcript.FullText)
	if err != nil {
		return result, fmt.Errorf("summary: %w", err)
	}
	result.Summary = summary

	if err := p.export(ctx, &result); err != nil {
		return result, err
	}
	if req.Docx {
		if err := p.exportDocx(ctx, &result); err != nil {
			return result, err
		}
	}

	if p.publisher != nil {
		result.PublishMessage = p.publisher.Publish(ctx, notion.Request{
			Filename:     meta.Filename,
			CreationDate: meta.CreationDate,
			Summary:      summary,
			Transcript:   transcript.FullText,
		})
		p.log.Info(ctx, "job %s: %s", result.JobID, result.PublishMessage)
	}

	p.log.Info(ctx, "job %s: done", result.JobID)
	return result, nil
}

// extractMetadata derives display metadata for the input. Without a
// prober only the bare file name is available.
func (p *Pipeline) extractMetadata(ctx context.Context, inputPath string) audio.Metadata {
	if p.prober == nil {
		return audio.Metadata{Filename: filepath.Base(inputPath)}
	}
	return p.prober.Extract(ctx, inputPath)
}

// spool copies the input into a job-private directory so later stages
// never touch the caller's file. The returned cleanup removes the copy;
// removal failures are logged, not propagated.
func (p *Pipeline) spool(jobID, inputPath string) (string, func(context.Context), error) {
	dir, err := p.fs.MkdirTemp("", "minutes-job-*")
	if err != nil {
		return "", nil, fmt.Errorf("cannot create spool directory: %w", err)
	}

	spooled := filepath.Join(dir, filepath.Base(inputPath))
	if err := p.fs.CopyFile(inputPath, spooled); err != nil {
		_ = p.fs.RemoveAll(dir)
		return "", nil, fmt.Errorf("cannot spool input file: %w", err)
	}

	cleanup := func(ctx context.Context) {
		if err := p.fs.RemoveAll(dir); err != nil {
			p.log.Warn(ctx, "job %s: cannot remove spool directory: %v", jobID, err)
		}
	}
	return spooled, cleanup, nil
}

// export writes the markdown minutes file, and the docx rendition when
// requested, into the output directory.
func (p *Pipeline) export(ctx context.Context, result *Result) error {
	if err := p.fs.MkdirAll(p.outputDir, 0o750); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	document := render.Export(result.Title, result.Summary, result.Transcript.FullText)
	name := render.ExportFileName(result.Title, p.now())
	path := filepath.Join(p.outputDir, name)

	if err := p.fs.WriteFile(path, []byte(document), 0o600); err != nil {
		return fmt.Errorf("cannot write export file: %w", err)
	}
	result.ExportPath = path
	p.log.Info(ctx, "job %s: exported %s", result.JobID, path)

	return nil
}

// exportDocx writes the docx rendition next to the markdown export.
func (p *Pipeline) exportDocx(ctx context.Context, result *Result) error {
	docxPath := strings.TrimSuffix(result.ExportPath, ".md") + ".docx"
	body := render.ExportBody(result.Summary, result.Transcript.FullText)
	if err := p.writeDocx(result.Title, body, docxPath); err != nil {
		return fmt.Errorf("cannot write docx file: %w", err)
	}
	result.DocxPath = docxPath
	p.log.Info(ctx, "job %s: exported %s", result.JobID, docxPath)
	return nil
}
