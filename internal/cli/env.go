package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/jomei/notionapi"
	openai "github.com/sashabaranov/go-openai"

	"github.com/KYO678/MeetingSummarizer/internal/audio"
	"github.com/KYO678/MeetingSummarizer/internal/config"
	"github.com/KYO678/MeetingSummarizer/internal/ffmpeg"
	"github.com/KYO678/MeetingSummarizer/internal/logger"
	"github.com/KYO678/MeetingSummarizer/internal/notion"
	"github.com/KYO678/MeetingSummarizer/internal/pipeline"
	"github.com/KYO678/MeetingSummarizer/internal/summarize"
	"github.com/KYO678/MeetingSummarizer/internal/transcribe"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing commands in isolation.
//
// All fields have production defaults via DefaultEnv(). Tests override
// specific fields with the With* options.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	ConfigLoader    ConfigLoader
	ToolLocator     ToolLocator
	PipelineFactory PipelineFactory
}

// ConfigLoader loads the YAML configuration file.
type ConfigLoader interface {
	Load(path string) (config.Config, error)
}

// ToolLocator finds the external transcoding tools.
type ToolLocator interface {
	Locate() ffmpeg.Tools
}

// JobRunner runs one minutes job.
type JobRunner interface {
	Run(ctx context.Context, req pipeline.Request) (pipeline.Result, error)
}

// PipelineParams carries everything needed to assemble a pipeline.
type PipelineParams struct {
	Config           config.Config
	Tools            ffmpeg.Tools
	OpenAIKey        string
	GeminiKey        string
	NotionKey        string
	NotionDatabaseID string
	Publish          bool
	Log              logger.Logger
}

// PipelineFactory assembles the job pipeline from its parameters.
type PipelineFactory interface {
	NewPipeline(p PipelineParams) JobRunner
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) { e.Stdout = w }
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) { e.Stderr = w }
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) { e.Getenv = fn }
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) { e.Now = fn }
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) { e.ConfigLoader = l }
}

// WithToolLocator sets the tool locator.
func WithToolLocator(l ToolLocator) EnvOption {
	return func(e *Env) { e.ToolLocator = l }
}

// WithPipelineFactory sets the pipeline factory.
func WithPipelineFactory(f PipelineFactory) EnvOption {
	return func(e *Env) { e.PipelineFactory = f }
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		Getenv:          os.Getenv,
		Now:             time.Now,
		ConfigLoader:    &defaultConfigLoader{},
		ToolLocator:     &defaultToolLocator{},
		PipelineFactory: &defaultPipelineFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

type defaultConfigLoader struct{}

func (defaultConfigLoader) Load(path string) (config.Config, error) {
	return config.Load(path)
}

type defaultToolLocator struct{}

func (defaultToolLocator) Locate() ffmpeg.Tools {
	return ffmpeg.Locate()
}

// defaultPipelineFactory wires the real clients and stages together.
type defaultPipelineFactory struct{}

func (defaultPipelineFactory) NewPipeline(p PipelineParams) JobRunner {
	client := openai.NewClient(p.OpenAIKey)

	transcriber := transcribe.NewWhisperTranscriber(client,
		transcribe.WithModel(p.Config.Transcription.Model),
		transcribe.WithLanguage(p.Config.Transcription.Language),
	)

	var segmenter transcribe.Segmenter
	if p.Tools.CanSegment() {
		s, err := audio.NewSegmenter(p.Tools.FFmpeg,
			audio.WithChunkDuration(time.Duration(p.Config.Transcription.ChunkSeconds)*time.Second))
		if err == nil {
			segmenter = s
		}
	}

	orchestrator := transcribe.NewOrchestrator(transcriber, segmenter,
		transcribe.WithSizeLimit(p.Config.Transcription.SizeLimitBytes),
		transcribe.WithLogger(p.Log),
	)

	var summarizer summarize.Summarizer
	if p.Config.Summary.Provider == config.ProviderGemini {
		summarizer = summarize.NewGeminiSummarizer(p.GeminiKey,
			summarize.WithGeminiModel(p.Config.Summary.Model))
	} else {
		summarizer = summarize.NewOpenAISummarizer(client,
			summarize.WithOpenAIModel(p.Config.Summary.Model))
	}

	opts := []pipeline.Option{
		pipeline.WithOutputDir(p.Config.Paths.Output),
		pipeline.WithLogger(p.Log),
	}
	if p.Tools.CanProbe() {
		opts = append(opts, pipeline.WithProber(audio.NewProber(p.Tools.FFprobe)))
	}
	if p.Publish {
		notionClient := notionapi.NewClient(notionapi.Token(p.NotionKey))
		opts = append(opts, pipeline.WithPublisher(
			notion.NewPublisher(notionClient, p.NotionDatabaseID,
				notion.WithPublisherLogger(p.Log))))
	}

	return pipeline.New(orchestrator, summarizer, opts...)
}

// Compile-time interface verification.
var (
	_ ConfigLoader    = (*defaultConfigLoader)(nil)
	_ ToolLocator     = (*defaultToolLocator)(nil)
	_ PipelineFactory = (*defaultPipelineFactory)(nil)
	_ JobRunner       = (*pipeline.Pipeline)(nil)
)
