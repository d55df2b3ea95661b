package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KYO678/MeetingSummarizer/internal/audio"
	"github.com/KYO678/MeetingSummarizer/internal/logger"
	"github.com/KYO678/MeetingSummarizer/internal/notion"
	"github.com/KYO678/MeetingSummarizer/internal/pipeline"
	"github.com/KYO678/MeetingSummarizer/internal/transcribe"
)

type fakeOrchestrator struct {
	transcript transcribe.Transcript
	err        error
	path       string
}

func (f *fakeOrchestrator) Transcribe(_ context.Context, path string) (transcribe.Transcript, error) {
	f.path = path
	return f.transcript, f.err
}

type fakeSummarizer struct {
	summary string
	err     error
	input   string
	calls   int
}

func (f *fakeSummarizer) Summarize(_ context.Context, transcript string) (string, error) {
	f.calls++
	f.input = transcript
	return f.summary, f.err
}

type fakeProber struct {
	meta audio.Metadata
}

func (f *fakeProber) Extract(context.Context, string) audio.Metadata {
	return f.meta
}

type fakePublisher struct {
	msg string
	req notion.Request
}

func (f *fakePublisher) Publish(_ context.Context, req notion.Request) string {
	f.req = req
	return f.msg
}

func writeInputFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "standup.m4a")
	if err := os.WriteFile(path, []byte("audio"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func fixedClock() time.Time {
	return time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)
}

func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	input := writeInputFile(t)
	outDir := t.TempDir()

	orch := &fakeOrchestrator{transcript: transcribe.Transcript{
		FullText: "we agreed to ship on friday\n",
		Segments: []transcribe.Segment{{Start: 0, End: 4, Text: "we agreed to ship on friday"}},
	}}
	sum := &fakeSummarizer{summary: "- ship on friday"}
	pub := &fakePublisher{msg: "Created a new minutes page in the Notion database. The transcript was split into 1 blocks."}
	prober := &fakeProber{meta: audio.Metadata{Filename: "standup.m4a", CreationDate: "2025-03-06 09:00:00"}}

	p := pipeline.New(orch, sum,
		pipeline.WithProber(prober),
		pipeline.WithPublisher(pub),
		pipeline.WithOutputDir(outDir),
		pipeline.WithLogger(logger.Discard()),
		pipeline.WithClock(fixedClock),
		pipeline.WithIDGenerator(func() string { return "job-1" }),
	)

	result, err := p.Run(context.Background(), pipeline.Request{InputPath: input, Title: "Weekly Sync"})
	if err != nil {
		t.Fatal(err)
	}

	if result.JobID != "job-1" {
		t.Errorf("JobID = %q", result.JobID)
	}
	if result.Summary != "- ship on friday" {
		t.Errorf("Summary = %q", result.Summary)
	}
	if !strings.Contains(result.Document, "we agreed to ship on friday") {
		t.Errorf("Document missing transcript text:\n%s", result.Document)
	}
	if result.PublishMessage != pub.msg {
		t.Errorf("PublishMessage = %q", result.PublishMessage)
	}

	// The orchestrator must see the spooled copy, not the caller's file.
	if orch.path == input {
		t.Error("transcription ran on the original input instead of the spooled copy")
	}
	if filepath.Base(orch.path) != "standup.m4a" {
		t.Errorf("spooled name = %q, want the input base name", filepath.Base(orch.path))
	}
	if _, err := os.Stat(filepath.Dir(orch.path)); !errors.Is(err, os.ErrNotExist) {
		t.Error("spool directory still exists after the job")
	}

	if sum.input != orch.transcript.FullText {
		t.Errorf("summarizer input = %q", sum.input)
	}

	if pub.req.Filename != "standup.m4a" || pub.req.CreationDate != "2025-03-06 09:00:00" {
		t.Errorf("publish request metadata = %+v", pub.req)
	}
	if pub.req.Summary != "- ship on friday" {
		t.Errorf("publish request summary = %q", pub.req.Summary)
	}

	wantExport := filepath.Join(outDir, "Weekly Sync_20250307.md")
	if result.ExportPath != wantExport {
		t.Errorf("ExportPath = %q, want %q", result.ExportPath, wantExport)
	}
	data, err := os.ReadFile(wantExport)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# Weekly Sync", "## Meeting Summary", "- ship on friday", "## Full Transcript", "we agreed to ship on friday"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("export file missing %q", want)
		}
	}
}

func TestRunDefaultTitle(t *testing.T) {
	t.Parallel()

	p := pipeline.New(
		&fakeOrchestrator{transcript: transcribe.Transcript{FullText: "t"}},
		&fakeSummarizer{summary: "s"},
		pipeline.WithOutputDir(t.TempDir()),
		pipeline.WithLogger(logger.Discard()),
		pipeline.WithClock(fixedClock),
	)

	result, err := p.Run(context.Background(), pipeline.Request{InputPath: writeInputFile(t)})
	if err != nil {
		t.Fatal(err)
	}
	if result.Title != pipeline.DefaultTitle {
		t.Errorf("Title = %q, want %q", result.Title, pipeline.DefaultTitle)
	}
}

func TestRunTranscriptionFailure(t *testing.T) {
	t.Parallel()

	transcribeErr := errors.New("api down")
	sum := &fakeSummarizer{}

	p := pipeline.New(
		&fakeOrchestrator{err: transcribeErr},
		sum,
		pipeline.WithOutputDir(t.TempDir()),
		pipeline.WithLogger(logger.Discard()),
	)

	_, err := p.Run(context.Background(), pipeline.Request{InputPath: writeInputFile(t)})
	if !errors.Is(err, transcribeErr) {
		t.Fatalf("error = %v, want %v", err, transcribeErr)
	}
	if sum.calls != 0 {
		t.Error("summarizer called after transcription failed")
	}
}

func TestRunSummaryFailure(t *testing.T) {
	t.Parallel()

	sumErr := errors.New("quota exceeded")
	p := pipeline.New(
		&fakeOrchestrator{transcript: transcribe.Transcript{FullText: "t"}},
		&fakeSummarizer{err: sumErr},
		pipeline.WithOutputDir(t.TempDir()),
		pipeline.WithLogger(logger.Discard()),
	)

	result, err := p.Run(context.Background(), pipeline.Request{InputPath: writeInputFile(t)})
	if !errors.Is(err, sumErr) {
		t.Fatalf("error = %v, want %v", err, sumErr)
	}
	// The transcript survives a summary failure.
	if result.Transcript.FullText != "t" {
		t.Errorf("Transcript = %+v, want preserved", result.Transcript)
	}
	if result.ExportPath != "" {
		t.Errorf("ExportPath = %q, want empty after summary failure", result.ExportPath)
	}
}

func TestRunWithoutPublisher(t *testing.T) {
	t.Parallel()

	p := pipeline.New(
		&fakeOrchestrator{transcript: transcribe.Transcript{FullText: "t"}},
		&fakeSummarizer{summary: "s"},
		pipeline.WithOutputDir(t.TempDir()),
		pipeline.WithLogger(logger.Discard()),
	)

	result, err := p.Run(context.Background(), pipeline.Request{InputPath: writeInputFile(t)})
	if err != nil {
		t.Fatal(err)
	}
	if result.PublishMessage != "" {
		t.Errorf("PublishMessage = %q, want empty when no publisher is configured", result.PublishMessage)
	}
}

func TestRunDocxExport(t *testing.T) {
	t.Parallel()

	var gotTitle, gotPath string
	p := pipeline.New(
		&fakeOrchestrator{transcript: transcribe.Transcript{FullText: "t"}},
		&fakeSummarizer{summary: "s"},
		pipeline.WithOutputDir(t.TempDir()),
		pipeline.WithLogger(logger.Discard()),
		pipeline.WithClock(fixedClock),
		pipeline.WithDocxWriter(func(title, _, path string) error {
			gotTitle = title
			gotPath = path
			return nil
		}),
	)

	result, err := p.Run(context.Background(), pipeline.Request{InputPath: writeInputFile(t), Title: "Sync", Docx: true})
	if err != nil {
		t.Fatal(err)
	}
	if gotTitle != "Sync" {
		t.Errorf("docx title = %q", gotTitle)
	}
	if !strings.HasSuffix(gotPath, "Sync_20250307.docx") {
		t.Errorf("docx path = %q", gotPath)
	}
	if result.DocxPath != gotPath {
		t.Errorf("DocxPath = %q, want %q", result.DocxPath, gotPath)
	}
}

func TestRunMissingInput(t *testing.T) {
	t.Parallel()

	p := pipeline.New(
		&fakeOrchestrator{},
		&fakeSummarizer{},
		pipeline.WithOutputDir(t.TempDir()),
		pipeline.WithLogger(logger.Discard()),
	)

	_, err := p.Run(context.Background(), pipeline.Request{InputPath: filepath.Join(t.TempDir(), "absent.m4a")})
	if err == nil {
		t.Fatal("expected error for a missing input file")
	}
}

func TestRunWithoutProberUsesFileName(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{msg: "ok"}
	p := pipeline.New(
		&fakeOrchestrator{transcript: transcribe.Transcript{FullText: "t"}},
		&fakeSummarizer{summary: "s"},
		pipeline.WithPublisher(pub),
		pipeline.WithOutputDir(t.TempDir()),
		pipeline.WithLogger(logger.Discard()),
	)

	input := writeInputFile(t)
	if _, err := p.Run(context.Background(), pipeline.Request{InputPath: input}); err != nil {
		t.Fatal(err)
	}

	if pub.req.Filename != filepath.Base(input) {
		t.Errorf("publish filename = %q, want base name fallback", pub.req.Filename)
	}
	if pub.req.CreationDate != "" {
		t.Errorf("publish creation date = %q, want empty", pub.req.CreationDate)
	}
}
