package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/clearpath-legal/sponsorag/internal/domain"
)

const (
	// DefaultEmbeddingModel is the OpenAI model used for generating embeddings
	DefaultEmbeddingModel = openai.LargeEmbedding3
	// DefaultCompletionModel is the OpenAI model used for generation
	DefaultCompletionModel = openai.GPT4
	// DefaultTemperature is the fixed sampling temperature for completions
	DefaultTemperature = 0.5
)

var (
	// ErrEmptyText is returned when text is empty
	ErrEmptyText = errors.New("text cannot be empty")
	// ErrEmptyPrompt is returned when a completion prompt is empty
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
	// ErrNoAPIKey is returned when OpenAI API key is not set
	ErrNoAPIKey = errors.New("SPONSORAG_OPENAI_API_KEY environment variable not set")
)

// API defines the OpenAI operations the pipeline depends on
type API interface {
	CreateEmbeddings(ctx context.Context, text string) ([]float32, error)
	CreateCompletion(ctx context.Context, prompt string) (string, error)
}

// Client wraps the OpenAI API client
type Client struct {
	api        API
	dimensions int
}

type OpenAIAdapter struct {
	client          *openai.Client
	embeddingModel  openai.EmbeddingModel
	completionModel string
	temperature     float32
}

func NewOpenAIAdapter(apiKey string, embeddingModel openai.EmbeddingModel, completionModel string) *OpenAIAdapter {
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	if completionModel == "" {
		completionModel = DefaultCompletionModel
	}
	return &OpenAIAdapter{
		client:          openai.NewClient(apiKey),
		embeddingModel:  embeddingModel,
		completionModel: completionModel,
		temperature:     DefaultTemperature,
	}
}

// CreateEmbeddings calls the OpenAI API to create embeddings
func (a *OpenAIAdapter) CreateEmbeddings(ctx context.Context, text string) ([]float32, error) {
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: a.embeddingModel,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding data returned")
	}

	return resp.Data[0].Embedding, nil
}

// CreateCompletion sends a single-turn, single-message chat completion request
func (a *OpenAIAdapter) CreateCompletion(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.completionModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: a.temperature,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", domain.ErrNoCompletion
	}

	return resp.Choices[0].Message.Content, nil
}

type Config struct {
	APIKey              string
	EmbeddingModel      openai.EmbeddingModel
	CompletionModel     string
	EmbeddingDimensions int
}

// NewClient creates a new OpenAI client using defaults.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a new OpenAI client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	dimensions := cfg.EmbeddingDimensions
	if dimensions <= 0 {
		dimensions = domain.EmbeddingDimensions
	}
	return &Client{
		api:        NewOpenAIAdapter(cfg.APIKey, cfg.EmbeddingModel, cfg.CompletionModel),
		dimensions: dimensions,
	}
}

// NewClientFromEnv creates a new OpenAI client using SPONSORAG_OPENAI_API_KEY
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("SPONSORAG_OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return NewClient(apiKey), nil
}

// GenerateEmbedding generates an embedding for the given text.
// A vector of the wrong dimensionality is an error: retrieval downstream
// requires exact dimensionality.
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, domain.NewEmbeddingError(ErrEmptyText)
	}

	embedding, err := c.api.CreateEmbeddings(ctx, text)
	if err != nil {
		return nil, domain.NewEmbeddingError(fmt.Errorf("failed to create embedding: %w", err))
	}

	expected := c.dimensions
	if expected <= 0 {
		expected = domain.EmbeddingDimensions
	}
	if len(embedding) != expected {
		return nil, domain.NewEmbeddingError(
			fmt.Errorf("expected %d dimensions, got %d", expected, len(embedding)))
	}

	return embedding, nil
}

// GenerateCompletion invokes the completion service with the filled prompt.
// One request in, one response out; no retries.
func (c *Client) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", domain.NewCompletionError(ErrEmptyPrompt)
	}

	text, err := c.api.CreateCompletion(ctx, prompt)
	if err != nil {
		if errors.Is(err, domain.ErrNoCompletion) {
			return "", domain.ErrNoCompletion
		}
		return "", domain.NewCompletionError(err)
	}

	return text, nil
}
