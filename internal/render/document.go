// Package render formats transcripts and summaries into documents:
// markdown for display and export, docx for office consumers.
package render

import (
	"fmt"
	"strings"

	"github.com/KYO678/MeetingSummarizer/internal/transcribe"
)

// Placeholder sentences for absent transcript parts.
const (
	noTextPlaceholder     = "No transcript text is available."
	noSegmentsPlaceholder = "No segment information is available."
)

// Document renders a transcript as markdown: a full-text section
// followed by one line per timestamped segment. Either section falls
// back to a placeholder sentence when its data is absent.
func Document(transcript transcribe.Transcript) string {
	var md strings.Builder
	md.WriteString("# Transcription Result\n\n")

	if transcript.FullText != "" {
		md.WriteString("## Full Text\n\n")
		md.WriteString(transcript.FullText)
		md.WriteString("\n\n")
	} else {
		md.WriteString(noTextPlaceholder)
		md.WriteString("\n\n")
	}

	if len(transcript.Segments) > 0 {
		md.WriteString("## Segments\n\n")
		for _, seg := range transcript.Segments {
			fmt.Fprintf(&md, "- **[%.2fs – %.2fs]**: %s\n", seg.Start, seg.End, strings.TrimSpace(seg.Text))
		}
	} else {
		md.WriteString(noSegmentsPlaceholder)
		md.WriteString("\n")
	}

	return md.String()
}
