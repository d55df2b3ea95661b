package audio

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Metadata describes an uploaded media file.
type Metadata struct {
	Filename     string // Base name of the upload, unmodified.
	CreationDate string // Normalized YYYY-MM-DD when derivable.
}

// dateTagKeys are the container tags scanned for a creation date,
// in declaration order. The first present tag wins.
var dateTagKeys = []string{"creation_time", "date", "creation_date", "datetime"}

// colonDateRe matches EXIF-style YYYY:MM:DD prefixes.
var colonDateRe = regexp.MustCompile(`^\d{4}:\d{2}:\d{2}`)

// Prober extracts file metadata via ffprobe with graceful fallback.
// A zero ffprobe path disables probing entirely; extraction then goes
// straight to the last-modified fallback.
type Prober struct {
	ffprobePath string

	cmd  commandRunner
	stat fileStatter
	now  func() time.Time
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithProberCommandRunner sets the command runner (for testing).
func WithProberCommandRunner(r commandRunner) ProberOption {
	return func(p *Prober) { p.cmd = r }
}

// WithProberStatter sets the file statter (for testing).
func WithProberStatter(s fileStatter) ProberOption {
	return func(p *Prober) { p.stat = s }
}

// WithProberNow sets the time source used when even the stat fallback fails.
func WithProberNow(fn func() time.Time) ProberOption {
	return func(p *Prober) { p.now = fn }
}

// NewProber creates a Prober. An empty ffprobePath is valid and means the
// probing tool is unavailable.
func NewProber(ffprobePath string, opts ...ProberOption) *Prober {
	p := &Prober{
		ffprobePath: ffprobePath,
		cmd:         osCommandRunner{},
		stat:        osFileStatter{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Extract derives the display filename and a normalized creation date for
// the file at path. It never fails: probing errors, missing tools, and
// unparseable tags all degrade to the file's last-modified date.
//
// Probing works on a private temporary copy of the file, which is removed
// before returning regardless of outcome.
func (p *Prober) Extract(ctx context.Context, path string) Metadata {
	meta := Metadata{Filename: filepath.Base(path)}

	if p.ffprobePath != "" {
		if date, ok := p.probeCreationDate(ctx, path); ok {
			meta.CreationDate = NormalizeDate(date)
			return meta
		}
	}

	meta.CreationDate = p.modifiedDate(path)
	return meta
}

// probeCreationDate runs ffprobe against a temp copy of path and scans the
// format tags for a creation date.
func (p *Prober) probeCreationDate(ctx context.Context, path string) (string, bool) {
	tmpPath, err := copyToTemp(path)
	if err != nil {
		return "", false
	}
	defer func() { _ = os.Remove(tmpPath) }()

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		tmpPath,
	}
	out, err := p.cmd.Output(ctx, p.ffprobePath, args)
	if err != nil {
		return "", false
	}

	var probed struct {
		Format struct {
			Tags map[string]string `json:"tags"`
		} `json:"format"`
	}
	if err := json.Unmarshal(out, &probed); err != nil {
		return "", false
	}

	for _, key := range dateTagKeys {
		if v, ok := probed.Format.Tags[key]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// modifiedDate returns the file's last-modified date, or today when the
// file cannot be stat'ed.
func (p *Prober) modifiedDate(path string) string {
	info, err := p.stat.Stat(path)
	if err != nil {
		return p.now().Format("2006-01-02")
	}
	return info.ModTime().Format("2006-01-02")
}

// NormalizeDate reduces a raw tag value to YYYY-MM-DD where possible.
// Values it cannot interpret are returned unchanged; normalization never
// fails.
//
//	"2023-05-01T10:00:00Z"  -> "2023-05-01"
//	"2023:05:01 10:00:00"   -> "2023-05-01"
//	"next tuesday"          -> "next tuesday"
func NormalizeDate(v string) string {
	if i := strings.Index(v, "T"); i >= 0 {
		v = v[:i]
	} else if i := strings.Index(v, " "); i >= 0 {
		v = v[:i]
	}

	if colonDateRe.MatchString(v) {
		v = strings.Replace(v, ":", "-", 2)
	}
	return v
}

// copyToTemp writes a private copy of path into the temp directory.
// The caller owns the returned file and must remove it.
func copyToTemp(path string) (string, error) {
	src, err := os.Open(path) // #nosec G304 -- path comes from the pipeline's own staging
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.CreateTemp("", "minutes-probe-*"+filepath.Ext(path))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}
