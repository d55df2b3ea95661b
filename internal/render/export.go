package render

import (
	"fmt"
	"time"

	"github.com/KYO678/MeetingSummarizer/internal/format"
)

// Export renders the downloadable minutes document: title, summary,
// then the full transcript.
func Export(title, summary, fullText string) string {
	return fmt.Sprintf("# %s\n\n%s", title, ExportBody(summary, fullText))
}

// ExportBody is the minutes document without the title heading, for
// renderers that place the title themselves.
func ExportBody(summary, fullText string) string {
	return fmt.Sprintf("## Meeting Summary\n\n%s\n\n## Full Transcript\n\n%s", summary, fullText)
}

// ExportFileName returns the export file name for a meeting title,
// date-stamped so repeated runs do not collide across days.
func ExportFileName(title string, now time.Time) string {
	return fmt.Sprintf("%s_%s.md", title, format.DateStamp(now))
}
