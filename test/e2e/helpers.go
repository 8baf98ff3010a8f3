//go:build e2e

package e2e

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clearpath-legal/sponsorag/internal/api/handlers"
	"github.com/clearpath-legal/sponsorag/internal/domain"
	"github.com/clearpath-legal/sponsorag/internal/prompt"
	"github.com/clearpath-legal/sponsorag/internal/repository"
	"github.com/clearpath-legal/sponsorag/internal/server"
	"github.com/clearpath-legal/sponsorag/internal/service"
	"github.com/clearpath-legal/sponsorag/internal/testutil"
)

const testAPIToken = "e2e-test-token"

// E2EEnv holds all resources needed for end-to-end tests
type E2EEnv struct {
	T         *testing.T
	Ctx       context.Context
	PostgresC *testutil.PostgresContainer
	Pool      *pgxpool.Pool
	Server    *httptest.Server
	Embedder  *stubEmbedder
	ChunkRepo *repository.ChunkRepository
	IngestSvc *service.IngestService
}

// stubEmbedder maps texts to deterministic vectors so nearest-neighbor
// ordering is predictable without a live embedding service.
type stubEmbedder struct {
	// axes maps a substring to an axis; a text containing the substring
	// embeds as a unit vector on that axis.
	axes map[string]int
}

func newStubEmbedder() *stubEmbedder {
	return &stubEmbedder{axes: map[string]int{}}
}

func (s *stubEmbedder) MapText(substr string, axis int) {
	s.axes[substr] = axis
}

func (s *stubEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	v := make([]float32, domain.EmbeddingDimensions)
	for substr, axis := range s.axes {
		if strings.Contains(text, substr) {
			v[axis] = 1.0
			return v, nil
		}
	}
	v[0] = 1.0
	return v, nil
}

// stubCompletion echoes a canned answer and records the prompt it saw.
type stubCompletion struct {
	Answer     string
	LastPrompt string
}

func (s *stubCompletion) GenerateCompletion(ctx context.Context, promptText string) (string, error) {
	s.LastPrompt = promptText
	return s.Answer, nil
}

// stubExtractor passes document bytes through as a single text segment.
type stubExtractor struct{}

func (stubExtractor) Extract(name string, data []byte) ([]string, error) {
	return []string{string(data)}, nil
}

func (stubExtractor) Supports(name string) bool {
	return strings.HasSuffix(name, ".txt")
}

// SetupE2EEnv starts a pgvector container and an HTTP server wired with
// real repositories and stub model clients.
func SetupE2EEnv(t *testing.T, completion *stubCompletion) *E2EEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	embedder := newStubEmbedder()
	chunkRepo := repository.NewChunkRepository(pool)
	sourceRepo := repository.NewSourceRepository(pool)
	registry := prompt.MustNewRegistry()

	retriever := service.NewRetrievalService(embedder, chunkRepo)
	generator := service.NewGenerationService(retriever, registry, completion)
	ingestSvc := service.NewIngestService(embedder, chunkRepo, sourceRepo, stubExtractor{})

	router := server.NewRouter(server.RouterConfig{
		APIToken:        testAPIToken,
		GenerateHandler: handlers.NewGenerateHandler(generator, retriever, registry),
	})

	srv := httptest.NewServer(router)

	env := &E2EEnv{
		T:         t,
		Ctx:       ctx,
		PostgresC: pgC,
		Pool:      pool,
		Server:    srv,
		Embedder:  embedder,
		ChunkRepo: chunkRepo,
		IngestSvc: ingestSvc,
	}

	t.Cleanup(func() {
		srv.Close()
		pool.Close()
		_ = pgC.Terminate(ctx)
	})

	return env
}
