// Package ffmpeg locates the external transcoding tools the pipeline
// depends on. The tools are optional: a missing ffprobe only disables
// metadata probing, and a missing ffmpeg only disables chunked
// transcription of oversized inputs.
package ffmpeg

import (
	"os"
	"os/exec"
)

// Environment variables overriding tool discovery.
const (
	EnvFFmpegPath  = "FFMPEG_PATH"
	EnvFFprobePath = "FFPROBE_PATH"
)

// Tools holds resolved paths to the transcoding binaries.
// An empty field means the tool is unavailable.
type Tools struct {
	FFmpeg  string
	FFprobe string
}

// CanSegment reports whether audio segmentation is possible.
func (t Tools) CanSegment() bool { return t.FFmpeg != "" }

// CanProbe reports whether metadata probing is possible.
func (t Tools) CanProbe() bool { return t.FFprobe != "" }

// Locator resolves tool paths with injectable lookups for testing.
type Locator struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithGetenv sets the environment lookup function.
func WithGetenv(fn func(string) string) LocatorOption {
	return func(l *Locator) { l.getenv = fn }
}

// WithLookPath sets the PATH lookup function.
func WithLookPath(fn func(string) (string, error)) LocatorOption {
	return func(l *Locator) { l.lookPath = fn }
}

// NewLocator creates a Locator with OS-backed defaults.
func NewLocator(opts ...LocatorOption) *Locator {
	l := &Locator{
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate resolves both tools. Explicit environment overrides win over
// PATH lookup; a tool that cannot be found is reported as an empty path,
// never as an error.
func (l *Locator) Locate() Tools {
	return Tools{
		FFmpeg:  l.locateOne(EnvFFmpegPath, "ffmpeg"),
		FFprobe: l.locateOne(EnvFFprobePath, "ffprobe"),
	}
}

func (l *Locator) locateOne(envKey, binary string) string {
	if p := l.getenv(envKey); p != "" {
		return p
	}
	p, err := l.lookPath(binary)
	if err != nil {
		return ""
	}
	return p
}

// Locate resolves tools using the default locator.
func Locate() Tools {
	return NewLocator().Locate()
}
