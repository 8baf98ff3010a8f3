// Package extract pulls plain text out of source documents.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxSegmentChars bounds the size of one extracted segment before chunking.
const MaxSegmentChars = 20000

// Extractor extracts text segments from supported document formats.
// PDF pages and DOCX paragraphs map to segments; plain-text files yield a
// single segment. Oversized segments are split at the segment bound.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether the file extension is a known document format.
func (e *Extractor) Supports(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".docx", ".txt", ".md":
		return true
	default:
		return false
	}
}

// Extract returns the text segments of the document, in document order.
func (e *Extractor) Extract(name string, data []byte) ([]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	case ".txt", ".md":
		return capSegments([]string{string(data)}), nil
	default:
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(name))
	}
}

// capSegments trims empty segments and splits any segment longer than
// MaxSegmentChars.
func capSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		runes := []rune(s)
		for len(runes) > MaxSegmentChars {
			out = append(out, string(runes[:MaxSegmentChars]))
			runes = runes[MaxSegmentChars:]
		}
		if len(runes) > 0 {
			out = append(out, string(runes))
		}
	}
	return out
}
