package extract

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// extractDOCX returns one segment per non-empty paragraph.
func extractDOCX(data []byte) ([]string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open docx: %w", err)
	}
	defer r.Close()

	content := r.Editable().GetContent()
	return capSegments(paragraphsFromXML(content)), nil
}

// paragraphsFromXML pulls the text runs out of WordprocessingML, one
// segment per <w:p> paragraph.
func paragraphsFromXML(xmlContent string) []string {
	var segments []string
	for _, para := range strings.Split(xmlContent, "</w:p>") {
		var text strings.Builder
		parts := strings.Split(para, "<w:t")
		for i, part := range parts {
			if i == 0 {
				continue
			}
			// Only <w:t> and <w:t attr...>; the split also matches
			// <w:tab/> and <w:tc> which carry no run text.
			if part == "" || (part[0] != '>' && part[0] != ' ') {
				continue
			}
			// Skip the rest of the opening tag, attributes included.
			closeIdx := strings.Index(part, ">")
			if closeIdx < 0 {
				continue
			}
			part = part[closeIdx+1:]
			endIdx := strings.Index(part, "</w:t>")
			if endIdx >= 0 {
				// Run text arrives XML-escaped; store it unescaped.
				text.WriteString(html.UnescapeString(part[:endIdx]))
			}
		}
		if text.Len() > 0 {
			segments = append(segments, text.String())
		}
	}
	return segments
}
