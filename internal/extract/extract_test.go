package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Supports(t *testing.T) {
	e := New()

	assert.True(t, e.Supports("guidance.pdf"))
	assert.True(t, e.Supports("Template1.DOCX"))
	assert.True(t, e.Supports("notes.txt"))
	assert.True(t, e.Supports("readme.md"))
	assert.False(t, e.Supports("image.png"))
	assert.False(t, e.Supports("archive.zip"))
	assert.False(t, e.Supports("no-extension"))
}

func TestExtractor_Extract_PlainText(t *testing.T) {
	e := New()

	segments, err := e.Extract("notes.txt", []byte("  Sponsors must keep records.\n"))

	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "Sponsors must keep records.", segments[0])
}

func TestExtractor_Extract_Unsupported(t *testing.T) {
	e := New()

	segments, err := e.Extract("image.png", []byte{0x89, 0x50})

	assert.Nil(t, segments)
	assert.Error(t, err)
}

func TestCapSegments(t *testing.T) {
	long := strings.Repeat("a", MaxSegmentChars+100)

	segments := capSegments([]string{"", "  ", "short", long})

	require.Len(t, segments, 3)
	assert.Equal(t, "short", segments[0])
	assert.Equal(t, MaxSegmentChars, utf8.RuneCountInString(segments[1]))
	assert.Equal(t, 100, utf8.RuneCountInString(segments[2]))
}

func TestParagraphsFromXML(t *testing.T) {
	xml := `<w:document><w:body>` +
		`<w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>` +
		`<w:p></w:p>` +
		`</w:body></w:document>`

	segments := paragraphsFromXML(xml)

	require.Len(t, segments, 2)
	assert.Equal(t, "First paragraph.", segments[0])
	assert.Equal(t, "Second paragraph.", segments[1])
}

func TestParagraphsFromXML_UnescapesEntities(t *testing.T) {
	xml := `<w:p><w:r><w:t>Skilled Worker &amp; Temporary Worker routes: salary &lt; threshold.</w:t></w:r></w:p>`

	segments := paragraphsFromXML(xml)

	require.Len(t, segments, 1)
	assert.Equal(t, "Skilled Worker & Temporary Worker routes: salary < threshold.", segments[0])
}
