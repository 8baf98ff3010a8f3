package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/clearpath-legal/sponsorag/internal/domain"
)

// MockOpenAIAPI is a mock for the OpenAI API
type MockOpenAIAPI struct {
	mock.Mock
}

func (m *MockOpenAIAPI) CreateEmbeddings(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func (m *MockOpenAIAPI) CreateCompletion(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func TestClient_GenerateEmbedding_Success(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI}

	ctx := context.Background()
	text := "What are the record-keeping duties of a sponsor licence holder?"
	expectedEmbedding := make([]float32, domain.EmbeddingDimensions)
	for i := range expectedEmbedding {
		expectedEmbedding[i] = float32(i) * 0.001
	}

	mockAPI.On("CreateEmbeddings", ctx, text).Return(expectedEmbedding, nil)

	embedding, err := client.GenerateEmbedding(ctx, text)

	assert.NoError(t, err)
	assert.Len(t, embedding, domain.EmbeddingDimensions)
	assert.Equal(t, expectedEmbedding, embedding)
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateEmbedding_EmptyText(t *testing.T) {
	client := NewClient("")

	ctx := context.Background()
	embedding, err := client.GenerateEmbedding(ctx, "")

	assert.Error(t, err)
	assert.Nil(t, embedding)
	assert.True(t, errors.Is(err, ErrEmptyText))

	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCodeEmbedding, domainErr.Code)
}

func TestClient_GenerateEmbedding_APIError(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI}

	ctx := context.Background()
	text := "Test text"
	apiErr := errors.New("API rate limit exceeded")

	mockAPI.On("CreateEmbeddings", ctx, text).Return(nil, apiErr)

	embedding, err := client.GenerateEmbedding(ctx, text)

	assert.Error(t, err)
	assert.Nil(t, embedding)
	assert.Contains(t, err.Error(), "failed to create embedding")

	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCodeEmbedding, domainErr.Code)
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateEmbedding_WrongDimensions(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI}

	ctx := context.Background()
	text := "Test text"
	wrongEmbedding := make([]float32, 1536)

	mockAPI.On("CreateEmbeddings", ctx, text).Return(wrongEmbedding, nil)

	embedding, err := client.GenerateEmbedding(ctx, text)

	assert.Error(t, err)
	assert.Nil(t, embedding)
	assert.Contains(t, err.Error(), "expected 3072 dimensions, got 1536")
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateCompletion_Success(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI}

	ctx := context.Background()
	prompt := "Draft a cover letter for a sponsor licence application."

	mockAPI.On("CreateCompletion", ctx, prompt).Return("Dear UKVI,", nil)

	result, err := client.GenerateCompletion(ctx, prompt)

	assert.NoError(t, err)
	assert.Equal(t, "Dear UKVI,", result)
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateCompletion_EmptyPrompt(t *testing.T) {
	client := NewClient("")

	result, err := client.GenerateCompletion(context.Background(), "")

	assert.Error(t, err)
	assert.Empty(t, result)
	assert.True(t, errors.Is(err, ErrEmptyPrompt))
}

func TestClient_GenerateCompletion_ServiceError(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI}

	ctx := context.Background()
	apiErr := errors.New("connection refused")

	mockAPI.On("CreateCompletion", ctx, "prompt").Return("", apiErr)

	result, err := client.GenerateCompletion(ctx, "prompt")

	assert.Error(t, err)
	assert.Empty(t, result)

	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCodeCompletion, domainErr.Code)
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateCompletion_NoChoices(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI}

	ctx := context.Background()
	mockAPI.On("CreateCompletion", ctx, "prompt").Return("", domain.ErrNoCompletion)

	result, err := client.GenerateCompletion(ctx, "prompt")

	assert.Error(t, err)
	assert.Empty(t, result)
	assert.True(t, errors.Is(err, domain.ErrNoCompletion))
	mockAPI.AssertExpectations(t)
}

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key")

	assert.NotNil(t, client)
	assert.NotNil(t, client.api)
	assert.Equal(t, domain.EmbeddingDimensions, client.dimensions)
}

func TestNewClientFromEnv_NoAPIKey(t *testing.T) {
	t.Setenv("SPONSORAG_OPENAI_API_KEY", "")

	client, err := NewClientFromEnv()

	assert.Nil(t, client)
	assert.Error(t, err)
	assert.Equal(t, ErrNoAPIKey, err)
}

func TestNewClientFromEnv_WithAPIKey(t *testing.T) {
	t.Setenv("SPONSORAG_OPENAI_API_KEY", "test-api-key")

	client, err := NewClientFromEnv()

	assert.NotNil(t, client)
	assert.NoError(t, err)
}
