package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validChunk() *Chunk {
	return &Chunk{
		ID:        1,
		Text:      "Sponsors must report a change of work location within 10 working days.",
		Embedding: make([]float32, EmbeddingDimensions),
		Source:    "sponsor-guidance-part3.pdf",
	}
}

func TestValidateChunk_Valid(t *testing.T) {
	assert.NoError(t, ValidateChunk(validChunk()))
}

func TestValidateChunk_Nil(t *testing.T) {
	err := ValidateChunk(nil)
	assert.Error(t, err)
}

func TestValidateChunk_EmptyText(t *testing.T) {
	c := validChunk()
	c.Text = ""
	assert.Error(t, ValidateChunk(c))
}

func TestValidateChunk_TextTooLong(t *testing.T) {
	c := validChunk()
	c.Text = strings.Repeat("a", MaxChunkTextLength+1)
	err := ValidateChunk(c)
	assert.Equal(t, ErrChunkTextTooLong, err)
}

func TestValidateChunk_SourceTooLong(t *testing.T) {
	c := validChunk()
	c.Source = strings.Repeat("s", MaxSourceLength+1)
	err := ValidateChunk(c)
	assert.Equal(t, ErrSourceNameTooLong, err)
}

func TestValidateChunk_WrongDimensions(t *testing.T) {
	tests := []struct {
		name string
		dims int
	}{
		{"ada-002 sized vector", 1536},
		{"empty vector", 0},
		{"one over", EmbeddingDimensions + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validChunk()
			c.Embedding = make([]float32, tt.dims)
			err := ValidateChunk(c)
			assert.Equal(t, ErrWrongDimensions, err)
		})
	}
}

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError(ErrCodeValidation, "bad input")
	assert.Equal(t, "[VALIDATION_ERROR] bad input", err.Error())
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := NewDomainError(ErrCodeInternalError, "boom")
	err := NewEmbeddingError(cause)
	assert.Equal(t, ErrCodeEmbedding, err.Code)
	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "embedding failed")
}
