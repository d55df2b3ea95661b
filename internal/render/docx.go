package render

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	docxFont     = "Calibri"
	docxBodySize = 11
)

var (
	mdHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	mdBullet  = regexp.MustCompile(`^[-*]\s+(.+)$`)
	mdOrdered = regexp.MustCompile(`^\d+\.\s+.+$`)
)

// WriteDocx renders a markdown minutes document into a styled docx file.
// Headings become bold runs sized by level, bullets keep their marker,
// inline emphasis markers are stripped.
func WriteDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addRun(doc.AddParagraph(""), title, true, 16)

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		switch {
		case mdHeading.MatchString(trimmed):
			m := mdHeading.FindStringSubmatch(trimmed)
			addRun(doc.AddParagraph(""), m[2], true, docxHeadingSize(len(m[1])))
		case mdBullet.MatchString(trimmed):
			m := mdBullet.FindStringSubmatch(trimmed)
			addRun(doc.AddParagraph(""), "• "+m[1], false, docxBodySize)
		case mdOrdered.MatchString(trimmed):
			addRun(doc.AddParagraph(""), trimmed, false, docxBodySize)
		default:
			addRun(doc.AddParagraph(""), trimmed, false, docxBodySize)
		}
	}

	return doc.SaveTo(outputPath)
}

func docxHeadingSize(level int) uint64 {
	switch level {
	case 1:
		return 15
	case 2:
		return 13
	default:
		return 12
	}
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = stripInlineMarkers(text)
	run := p.AddText(text).Font(docxFont).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func stripInlineMarkers(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
