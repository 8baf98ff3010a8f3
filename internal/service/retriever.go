package service

import (
	"context"
	"log"
	"time"

	"github.com/clearpath-legal/sponsorag/internal/domain"
	"github.com/clearpath-legal/sponsorag/internal/telemetry"
)

// DefaultTopK is the number of nearest chunks retrieved per query.
const DefaultTopK = 5

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ChunkSearcher defines the vector-store search boundary
type ChunkSearcher interface {
	Search(ctx context.Context, embedding []float32, topK int) ([]domain.RetrievedMatch, error)
}

// RetrievalResult carries the matches for one query plus an explicit
// degradation marker, so callers choose propagate-vs-degrade deliberately
// instead of relying on a silent empty list.
type RetrievalResult struct {
	Matches []domain.RetrievedMatch

	// Degraded is set when the vector store failed and retrieval fell back
	// to an empty match set.
	Degraded bool
	// DegradedReason records the underlying failure when Degraded is set.
	DegradedReason string
}

// Retriever resolves the nearest stored chunks for a query.
type Retriever interface {
	Retrieve(ctx context.Context, queryText string) (*RetrievalResult, error)
	// RetrieveTopK overrides the configured result count; topK <= 0 uses
	// the configured default.
	RetrieveTopK(ctx context.Context, queryText string, topK int) (*RetrievalResult, error)
}

// RetrieverConfig tunes a RetrievalService.
type RetrieverConfig struct {
	TopK          int
	EmbedTimeout  time.Duration
	SearchTimeout time.Duration
}

// RetrievalService implements Retriever over an embedding client and a
// chunk searcher.
type RetrievalService struct {
	embedder EmbeddingClient
	searcher ChunkSearcher
	cfg      RetrieverConfig
}

// NewRetrievalService creates a RetrievalService with default settings.
func NewRetrievalService(embedder EmbeddingClient, searcher ChunkSearcher) *RetrievalService {
	return NewRetrievalServiceWithConfig(embedder, searcher, RetrieverConfig{})
}

// NewRetrievalServiceWithConfig creates a RetrievalService with explicit configuration.
func NewRetrievalServiceWithConfig(embedder EmbeddingClient, searcher ChunkSearcher, cfg RetrieverConfig) *RetrievalService {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	return &RetrievalService{
		embedder: embedder,
		searcher: searcher,
		cfg:      cfg,
	}
}

// Retrieve embeds the query and searches the vector store.
//
// An embedding failure fails the whole retrieval: a search without a query
// vector is meaningless. A vector-store failure degrades to an empty result
// set with Degraded set, so the caller can proceed with no context while
// telling the user the answer may be less grounded.
func (s *RetrievalService) Retrieve(ctx context.Context, queryText string) (*RetrievalResult, error) {
	return s.RetrieveTopK(ctx, queryText, 0)
}

// RetrieveTopK is Retrieve with a per-call result count.
func (s *RetrievalService) RetrieveTopK(ctx context.Context, queryText string, topK int) (*RetrievalResult, error) {
	if queryText == "" {
		return nil, domain.ErrEmptyQuery
	}
	if topK <= 0 {
		topK = s.cfg.TopK
	}

	ctx, span := telemetry.StartSpan(ctx, "RetrievalService.Retrieve", telemetry.SpanAttributes{
		Operation: "retrieve",
	})
	defer span.End()

	embedCtx, cancel := withTimeout(ctx, s.cfg.EmbedTimeout)
	defer cancel()

	embedding, err := s.embedder.GenerateEmbedding(embedCtx, queryText)
	if err != nil {
		return nil, err
	}

	searchCtx, cancel := withTimeout(ctx, s.cfg.SearchTimeout)
	defer cancel()

	matches, err := s.searcher.Search(searchCtx, embedding, topK)
	if err != nil {
		retrievalErr := domain.NewRetrievalError(err)
		log.Printf("retrieval degraded to empty context: %v", retrievalErr)
		telemetry.CaptureError(ctx, retrievalErr)
		return &RetrievalResult{
			Matches:        []domain.RetrievedMatch{},
			Degraded:       true,
			DegradedReason: retrievalErr.Error(),
		}, nil
	}

	return &RetrievalResult{Matches: matches}, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
