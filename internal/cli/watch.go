package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/KYO678/MeetingSummarizer/internal/pipeline"
)

// settleDelay gives the writer time to finish before a new file in the
// inbox is picked up.
const settleDelay = 500 * time.Millisecond

// WatchCmd creates the watch command: a drop-directory front end that
// runs one job per new audio file, strictly one at a time.
func WatchCmd(env *Env) *cobra.Command {
	var (
		flags processFlags
		inbox string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch an inbox directory and process new recordings",
		Long: `Watch a directory for new audio files and run the minutes pipeline on
each one as it appears. Files are processed sequentially; a new file
dropped while a job is running waits its turn.

Stop with Ctrl-C.`,
		Example: `  minutes watch
  minutes watch -i ./inbox --publish
  minutes watch --provider gemini -o ./minutes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, env, inbox, flags)
		},
	}

	cmd.Flags().StringVarP(&inbox, "inbox", "i", "", "Directory to watch (default from config: inbox)")
	cmd.Flags().StringVarP(&flags.title, "title", "t", "", "Meeting title for all processed files")
	cmd.Flags().StringVarP(&flags.outputDir, "output", "o", "", "Output directory for the export files")
	cmd.Flags().StringVarP(&flags.language, "language", "l", "", "Audio language (ISO 639-1 code, default: ja)")
	cmd.Flags().StringVarP(&flags.model, "model", "m", "", "Transcription model (default: whisper-1)")
	cmd.Flags().StringVar(&flags.provider, "provider", "", "Summary provider: openai, gemini")
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to the YAML config file")
	cmd.Flags().BoolVar(&flags.publish, "publish", false, "Publish the minutes to Notion")
	cmd.Flags().BoolVar(&flags.docx, "docx", false, "Also export a .docx rendition")

	return cmd
}

// runWatch validates, then blocks on the inbox until the context is
// cancelled.
func runWatch(cmd *cobra.Command, env *Env, inbox string, flags processFlags) error {
	ctx := cmd.Context()

	params, err := assemblePipelineParams(env, flags)
	if err != nil {
		return err
	}

	if inbox == "" {
		inbox = params.Config.Paths.Inbox
	}
	if info, err := os.Stat(inbox); err != nil || !info.IsDir() {
		return fmt.Errorf("inbox is not a directory: %s", inbox)
	}

	runner := env.PipelineFactory.NewPipeline(params)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(inbox); err != nil {
		return fmt.Errorf("watch %s: %w", inbox, err)
	}

	fmt.Fprintf(env.Stderr, "Watching %s (supported: %s)\n", inbox, supportedFormatsList())

	return watchLoop(ctx, env, runner, watcher, flags)
}

// watchLoop handles events until cancellation. Jobs run synchronously:
// the loop does not read new events while a job is in flight, so files
// are processed strictly one at a time.
func watchLoop(ctx context.Context, env *Env, runner JobRunner, watcher *fsnotify.Watcher, flags processFlags) error {
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(env.Stderr, "Watcher stopped")
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Op.Has(fsnotify.Create) || !isAudioFile(event.Name) {
				continue
			}

			select {
			case <-ctx.Done():
				fmt.Fprintln(env.Stderr, "Watcher stopped")
				return ctx.Err()
			case <-time.After(settleDelay):
			}

			result, err := runner.Run(ctx, pipeline.Request{
				InputPath: event.Name,
				Title:     flags.title,
				Docx:      flags.docx,
			})
			if err != nil {
				fmt.Fprintf(env.Stderr, "Failed to process %s: %v\n", event.Name, err)
				continue
			}
			reportResult(env, result)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fmt.Fprintf(env.Stderr, "Watcher error: %v\n", err)
		}
	}
}

// isAudioFile reports whether the path has a supported audio extension.
func isAudioFile(path string) bool {
	return supportedFormats[strings.ToLower(filepath.Ext(path))]
}
