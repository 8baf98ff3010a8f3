package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/clearpath-legal/sponsorag/internal/domain"
	"github.com/clearpath-legal/sponsorag/internal/service"
)

// ChunkRepository handles persistence and nearest-neighbor search of
// guidance-document chunks. Searches order by cosine similarity via the
// halfvec HNSW index created by the migrations.
type ChunkRepository struct {
	pool *pgxpool.Pool
}

func NewChunkRepository(pool *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{pool: pool}
}

// InsertChunks inserts a batch of chunks. Per-row failures (dimensionality
// mismatch, schema violations) are reported, not fatal to the batch; rows with
// a vector that is not exactly 3072 floats are rejected before insertion.
func (r *ChunkRepository) InsertChunks(ctx context.Context, chunks []domain.Chunk) ([]service.InsertFailure, error) {
	var failures []service.InsertFailure

	for i := range chunks {
		c := &chunks[i]
		if err := domain.ValidateChunk(c); err != nil {
			failures = append(failures, service.InsertFailure{ChunkID: c.ID, Source: c.Source, Err: err})
			continue
		}

		createdAt := c.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		_, err := r.pool.Exec(ctx,
			`INSERT INTO chunks (id, text, embedding, source, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			c.ID,
			c.Text,
			pgvector.NewVector(c.Embedding),
			c.Source,
			createdAt,
		)
		if err != nil {
			failures = append(failures, service.InsertFailure{ChunkID: c.ID, Source: c.Source, Err: err})
		}
	}

	return failures, nil
}

// Search returns the topK nearest chunks to the query vector by cosine
// similarity, highest similarity first. The embedding column is cast to
// halfvec to hit the HNSW index; score is 1 - cosine distance so ordering is
// stable for identical vectors within one process lifetime.
func (r *ChunkRepository) Search(ctx context.Context, embedding []float32, topK int) ([]domain.RetrievedMatch, error) {
	if len(embedding) != domain.EmbeddingDimensions {
		return nil, domain.ErrWrongDimensions
	}
	if topK <= 0 {
		return nil, domain.ErrInvalidTopK
	}

	vec := pgvector.NewVector(embedding)

	rows, err := r.pool.Query(ctx,
		`SELECT text, source,
		        1.0 - (embedding::halfvec(3072) <=> $1::vector::halfvec(3072)) AS score
		 FROM chunks
		 ORDER BY embedding::halfvec(3072) <=> $1::vector::halfvec(3072)
		 LIMIT $2`,
		vec, topK,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]domain.RetrievedMatch, 0, topK)
	for rows.Next() {
		var m domain.RetrievedMatch
		if err := rows.Scan(&m.PageContent, &m.Source, &m.Score); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}

	return matches, rows.Err()
}

// DeleteBySource removes all chunks originating from the given file, used
// when re-ingesting a changed document.
func (r *ChunkRepository) DeleteBySource(ctx context.Context, source string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM chunks WHERE source = $1`, source)
	return err
}

// MaxID returns the highest chunk ID, seeding the monotonic IDs of the next
// ingestion run.
func (r *ChunkRepository) MaxID(ctx context.Context) (int64, error) {
	var max int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM chunks`).Scan(&max)
	return max, err
}

// CountBySource returns the number of stored chunks for one source file.
func (r *ChunkRepository) CountBySource(ctx context.Context, source string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM chunks WHERE source = $1`, source).Scan(&count)
	return count, err
}
