package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KYO678/MeetingSummarizer/internal/config"
	"github.com/KYO678/MeetingSummarizer/internal/lang"
	"github.com/KYO678/MeetingSummarizer/internal/logger"
	"github.com/KYO678/MeetingSummarizer/internal/pipeline"
)

// DefaultConfigPath is where the config file is looked for when --config
// is not given. A missing file means defaults.
const DefaultConfigPath = "minutes.yaml"

// supportedFormats lists audio formats accepted by OpenAI's transcription API.
// Source: https://platform.openai.com/docs/guides/speech-to-text
var supportedFormats = map[string]bool{
	".flac": true,
	".m4a":  true,
	".mp3":  true,
	".mp4":  true,
	".mpeg": true,
	".mpga": true,
	".ogg":  true,
	".wav":  true,
	".webm": true,
}

// supportedFormatsList returns a sorted, comma-separated list for error messages.
func supportedFormatsList() string {
	formats := make([]string, 0, len(supportedFormats))
	for ext := range supportedFormats {
		formats = append(formats, strings.TrimPrefix(ext, "."))
	}
	slices.Sort(formats)
	return strings.Join(formats, ", ")
}

// processFlags holds the flag values of the process command.
type processFlags struct {
	title      string
	outputDir  string
	language   string
	model      string
	provider   string
	configPath string
	publish    bool
	docx       bool
}

// ProcessCmd creates the process command.
// The env parameter provides injectable dependencies for testing.
func ProcessCmd(env *Env) *cobra.Command {
	var flags processFlags

	cmd := &cobra.Command{
		Use:   "process <audio-file>",
		Short: "Transcribe and summarize one meeting recording",
		Long: `Transcribe an audio file, summarize it into meeting minutes, and write
the result to the output directory as markdown.

Files above the transcription size limit are split into fixed-duration
chunks with ffmpeg and transcribed chunk by chunk. With --publish the
minutes are also written to the configured Notion database.

Supported formats: ` + supportedFormatsList(),
		Example: `  minutes process standup.m4a
  minutes process standup.m4a -t "Weekly Standup" --publish
  minutes process lecture.mp3 -l en --provider gemini
  minutes process meeting.wav --docx -o ./minutes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, env, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.title, "title", "t", "", "Meeting title (default: \"Meeting Minutes\")")
	cmd.Flags().StringVarP(&flags.outputDir, "output", "o", "", "Output directory for the export files")
	cmd.Flags().StringVarP(&flags.language, "language", "l", "", "Audio language (ISO 639-1 code, default: ja)")
	cmd.Flags().StringVarP(&flags.model, "model", "m", "", "Transcription model (default: whisper-1)")
	cmd.Flags().StringVar(&flags.provider, "provider", "", "Summary provider: openai, gemini")
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to the YAML config file")
	cmd.Flags().BoolVar(&flags.publish, "publish", false, "Publish the minutes to Notion")
	cmd.Flags().BoolVar(&flags.docx, "docx", false, "Also export a .docx rendition")

	return cmd
}

// runProcess validates, assembles the pipeline, and runs one job.
// Validation order: file exists -> format -> config -> provider -> API keys.
func runProcess(cmd *cobra.Command, env *Env, inputPath string, flags processFlags) error {
	ctx := cmd.Context()

	if _, err := os.Stat(inputPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
		}
		return fmt.Errorf("cannot access input file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(inputPath))
	if !supportedFormats[ext] {
		return fmt.Errorf("unsupported format %q (supported: %s): %w",
			ext, supportedFormatsList(), ErrUnsupportedFormat)
	}

	params, err := assemblePipelineParams(env, flags)
	if err != nil {
		return err
	}

	runner := env.PipelineFactory.NewPipeline(params)

	result, err := runner.Run(ctx, pipeline.Request{
		InputPath: inputPath,
		Title:     flags.title,
		Docx:      flags.docx,
	})
	if err != nil {
		return err
	}

	reportResult(env, result)
	return nil
}

// assemblePipelineParams merges config file and flags, then resolves
// credentials. Shared by process and watch.
func assemblePipelineParams(env *Env, flags processFlags) (PipelineParams, error) {
	configPath := flags.configPath
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := env.ConfigLoader.Load(configPath)
	if err != nil {
		return PipelineParams{}, err
	}

	// Flags override the config file.
	if flags.language != "" {
		if err := lang.Validate(flags.language); err != nil {
			return PipelineParams{}, err
		}
		cfg.Transcription.Language = lang.BaseCode(flags.language)
	}
	if flags.model != "" {
		cfg.Transcription.Model = flags.model
	}
	if flags.outputDir != "" {
		cfg.Paths.Output = flags.outputDir
	}
	if flags.provider != "" {
		cfg.Summary.Provider = flags.provider
	}

	if cfg.Summary.Provider != config.ProviderOpenAI && cfg.Summary.Provider != config.ProviderGemini {
		return PipelineParams{}, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Summary.Provider)
	}

	openaiKey := env.Getenv(config.EnvOpenAIAPIKey)
	if openaiKey == "" {
		return PipelineParams{}, fmt.Errorf("%w (set it with: export %s=sk-...)", ErrAPIKeyMissing, config.EnvOpenAIAPIKey)
	}

	geminiKey := env.Getenv(config.EnvGeminiAPIKey)
	if cfg.Summary.Provider == config.ProviderGemini && geminiKey == "" {
		return PipelineParams{}, fmt.Errorf("%w (set it with: export %s=...)", ErrGeminiKeyMissing, config.EnvGeminiAPIKey)
	}

	notionKey := env.Getenv(config.EnvNotionAPIKey)
	databaseID := cfg.Notion.DatabaseID
	if databaseID == "" {
		databaseID = env.Getenv(config.EnvNotionDatabaseID)
	}
	if flags.publish && (notionKey == "" || databaseID == "") {
		return PipelineParams{}, ErrNotionNotConfigured
	}

	tools := env.ToolLocator.Locate()
	if !tools.CanSegment() {
		fmt.Fprintln(env.Stderr, "Warning: ffmpeg not found; files above the size limit cannot be processed")
	}
	if !tools.CanProbe() {
		fmt.Fprintln(env.Stderr, "Warning: ffprobe not found; creation dates fall back to file times")
	}

	return PipelineParams{
		Config:           cfg,
		Tools:            tools,
		OpenAIKey:        openaiKey,
		GeminiKey:        geminiKey,
		NotionKey:        notionKey,
		NotionDatabaseID: databaseID,
		Publish:          flags.publish,
		Log:              logger.New(env.Stderr, logger.ParseLevel(cfg.Logging.Level)),
	}, nil
}

// reportResult prints the outcome of a finished job.
func reportResult(env *Env, result pipeline.Result) {
	fmt.Fprintf(env.Stdout, "Minutes exported to %s\n", result.ExportPath)
	if result.DocxPath != "" {
		fmt.Fprintf(env.Stdout, "Docx exported to %s\n", result.DocxPath)
	}
	if n := len(result.Transcript.FailedChunks); n > 0 {
		fmt.Fprintf(env.Stderr, "Warning: %d chunk(s) failed and are missing from the transcript: %v\n",
			n, result.Transcript.FailedChunks)
	}
	if result.PublishMessage != "" {
		fmt.Fprintln(env.Stdout, result.PublishMessage)
	}
}
