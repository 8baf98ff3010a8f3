package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearpath-legal/sponsorag/internal/domain"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	chunks := chunkText("  A short guidance paragraph.  ", DefaultChunkConfig())

	require.Len(t, chunks, 1)
	assert.Equal(t, "A short guidance paragraph.", chunks[0])
}

func TestChunkText_Empty(t *testing.T) {
	assert.Nil(t, chunkText("", DefaultChunkConfig()))
	assert.Nil(t, chunkText("   \n\t ", DefaultChunkConfig()))
}

func TestChunkText_SplitsAtWordBoundaries(t *testing.T) {
	cfg := ChunkConfig{MaxChars: 50, MinChars: 20, Overlap: 0, MaxChunks: 100}
	text := strings.Repeat("sponsor duties apply ", 20)

	chunks := chunkText(text, cfg)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), cfg.MaxChars)
		// No chunk should start or end mid-word for whitespace-separated text.
		assert.Equal(t, strings.TrimSpace(c), c)
	}
}

func TestChunkText_StaysWithinStoredBound(t *testing.T) {
	text := strings.Repeat("The licence holder must report changes within ten working days. ", 400)

	chunks := chunkText(text, DefaultChunkConfig())

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), domain.MaxChunkTextLength)
	}
}

func TestChunkText_OverlapRepeatsTail(t *testing.T) {
	cfg := ChunkConfig{MaxChars: 40, MinChars: 10, Overlap: 10, MaxChunks: 10}
	text := strings.Repeat("abcdefghi ", 20)

	chunks := chunkText(text, cfg)

	require.Greater(t, len(chunks), 1)
	// Each chunk after the first starts with text already seen at the end of
	// the previous one.
	for i := 1; i < len(chunks); i++ {
		head := []rune(chunks[i])
		if len(head) > 5 {
			head = head[:5]
		}
		assert.Contains(t, chunks[i-1], string(head))
	}
}

func TestChunkText_MaxChunksCap(t *testing.T) {
	cfg := ChunkConfig{MaxChars: 20, MinChars: 5, Overlap: 0, MaxChunks: 3}
	text := strings.Repeat("word ", 100)

	chunks := chunkText(text, cfg)

	assert.Len(t, chunks, 3)
}

func TestChunkText_UnicodeRuneCounting(t *testing.T) {
	cfg := ChunkConfig{MaxChars: 10, MinChars: 2, Overlap: 0, MaxChunks: 100}
	// Multi-byte runes: rune count, not byte count, drives the split.
	text := strings.Repeat("日本語です ", 10)

	chunks := chunkText(text, cfg)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), cfg.MaxChars)
	}
}
