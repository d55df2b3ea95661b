package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/KYO678/MeetingSummarizer/internal/audio"
	"github.com/KYO678/MeetingSummarizer/internal/cli"
	"github.com/KYO678/MeetingSummarizer/internal/lang"
	"github.com/KYO678/MeetingSummarizer/internal/summarize"
	"github.com/KYO678/MeetingSummarizer/internal/transcribe"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK            = 0
	ExitGeneral       = 1
	ExitUsage         = 2
	ExitSetup         = 3
	ExitValidation    = 4
	ExitTranscription = 5
	ExitSummary       = 6
	ExitInterrupt     = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env := cli.DefaultEnv()

	rootCmd := &cobra.Command{
		Use:     "minutes",
		Short:   "Transcribe meeting recordings and publish the minutes",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(cli.ProcessCmd(env))
	rootCmd.AddCommand(cli.WatchCmd(env))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps errors to exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	if isCobraUsageError(err) {
		return ExitUsage
	}

	// Setup errors: missing credentials or tooling.
	if errors.Is(err, cli.ErrAPIKeyMissing) || errors.Is(err, cli.ErrGeminiKeyMissing) ||
		errors.Is(err, cli.ErrNotionNotConfigured) || errors.Is(err, cli.ErrUnsupportedProvider) ||
		errors.Is(err, transcribe.ErrSegmenterUnavailable) {
		return ExitSetup
	}

	// Validation errors: bad input.
	if errors.Is(err, cli.ErrUnsupportedFormat) || errors.Is(err, cli.ErrFileNotFound) ||
		errors.Is(err, lang.ErrInvalid) {
		return ExitValidation
	}

	if errors.Is(err, audio.ErrSegmentationFailed) {
		return ExitTranscription
	}

	if errors.Is(err, summarize.ErrSummaryFailed) || errors.Is(err, summarize.ErrEmptyTranscript) {
		return ExitSummary
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate
// Cobra usage errors. Cobra doesn't expose typed errors, so string
// matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"required flag",
	"unknown flag",
	"unknown shorthand",
	"unknown command",
	"flag needs an argument",
	"invalid argument",
	"accepts ",
	"requires at least",
	"requires at most",
}

func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
