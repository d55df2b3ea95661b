// Package format contains display helpers for progress and file naming.
package format

import (
	"fmt"
	"time"
)

// Duration formats a duration as HH:MM:SS or MM:SS.
func Duration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Size formats a byte count for progress messages.
// Sizes at or above 1MB are shown with two decimals, matching the
// chunk-size reporting of the transcription stage.
func Size(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	if bytes >= mb {
		return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
	}
	if bytes >= kb {
		return fmt.Sprintf("%d KB", bytes/kb)
	}
	return fmt.Sprintf("%d bytes", bytes)
}

// DateStamp renders t as a compact YYYYMMDD stamp for export file names.
func DateStamp(t time.Time) string {
	return t.Format("20060102")
}
