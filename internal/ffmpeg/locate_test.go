package ffmpeg_test

import (
	"errors"
	"testing"

	"github.com/KYO678/MeetingSummarizer/internal/ffmpeg"
)

func TestLocate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		env      map[string]string
		lookPath map[string]string // binary name -> resolved path; missing = not found
		want     ffmpeg.Tools
	}{
		{
			name:     "both on PATH",
			lookPath: map[string]string{"ffmpeg": "/usr/bin/ffmpeg", "ffprobe": "/usr/bin/ffprobe"},
			want:     ffmpeg.Tools{FFmpeg: "/usr/bin/ffmpeg", FFprobe: "/usr/bin/ffprobe"},
		},
		{
			name: "neither available",
			want: ffmpeg.Tools{},
		},
		{
			name:     "env override wins over PATH",
			env:      map[string]string{ffmpeg.EnvFFmpegPath: "/opt/ffmpeg/bin/ffmpeg"},
			lookPath: map[string]string{"ffmpeg": "/usr/bin/ffmpeg"},
			want:     ffmpeg.Tools{FFmpeg: "/opt/ffmpeg/bin/ffmpeg"},
		},
		{
			name:     "ffprobe missing only disables probing",
			lookPath: map[string]string{"ffmpeg": "/usr/bin/ffmpeg"},
			want:     ffmpeg.Tools{FFmpeg: "/usr/bin/ffmpeg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loc := ffmpeg.NewLocator(
				ffmpeg.WithGetenv(func(key string) string { return tt.env[key] }),
				ffmpeg.WithLookPath(func(bin string) (string, error) {
					if p, ok := tt.lookPath[bin]; ok {
						return p, nil
					}
					return "", errors.New("executable file not found in $PATH")
				}),
			)

			got := loc.Locate()
			if got != tt.want {
				t.Errorf("Locate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestToolsCapabilities(t *testing.T) {
	t.Parallel()

	full := ffmpeg.Tools{FFmpeg: "/usr/bin/ffmpeg", FFprobe: "/usr/bin/ffprobe"}
	if !full.CanSegment() || !full.CanProbe() {
		t.Error("fully resolved tools should report both capabilities")
	}

	none := ffmpeg.Tools{}
	if none.CanSegment() || none.CanProbe() {
		t.Error("empty tools should report no capabilities")
	}
}
