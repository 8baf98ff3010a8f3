package domain

import (
	"time"
	"unicode/utf8"
)

const (
	// EmbeddingDimensions is the dimensionality of text-embedding-3-large vectors.
	// Every vector that crosses the storage boundary must have exactly this length.
	EmbeddingDimensions = 3072

	// MaxChunkTextLength bounds the stored text of a single chunk.
	MaxChunkTextLength = 4096

	// MaxSourceLength bounds the originating file name stored with a chunk.
	MaxSourceLength = 1024
)

// Chunk is a bounded segment of guidance-document text stored alongside its
// embedding. Chunks are created during ingestion and immutable once stored.
type Chunk struct {
	ID        int64
	Text      string
	Embedding []float32
	Source    string
	CreatedAt time.Time
}

// ValidateChunk checks a chunk against the storage schema before insertion.
func ValidateChunk(c *Chunk) error {
	if c == nil {
		return NewDomainError(ErrCodeValidation, "chunk cannot be nil")
	}
	if c.Text == "" {
		return NewDomainError(ErrCodeValidation, "chunk text is required")
	}
	if utf8.RuneCountInString(c.Text) > MaxChunkTextLength {
		return ErrChunkTextTooLong
	}
	if c.Source == "" {
		return NewDomainError(ErrCodeValidation, "chunk source is required")
	}
	if utf8.RuneCountInString(c.Source) > MaxSourceLength {
		return ErrSourceNameTooLong
	}
	if len(c.Embedding) != EmbeddingDimensions {
		return ErrWrongDimensions
	}
	return nil
}

// RetrievedMatch is one search hit for a query, carrying the chunk text and
// enough provenance to attribute generated content. Matches are ordered by
// descending similarity and never persisted.
type RetrievedMatch struct {
	PageContent string
	Source      string
	Score       float32
}

// Source tracks an ingested document so unchanged files can be skipped on
// subsequent ingestion runs.
type Source struct {
	Name       string
	SHA256     string
	ChunkCount int
	IngestedAt time.Time
}
