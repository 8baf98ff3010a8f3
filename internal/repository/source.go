package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clearpath-legal/sponsorag/internal/domain"
)

// SourceRepository tracks ingested documents by content hash so unchanged
// files are skipped on later ingestion runs.
type SourceRepository struct {
	pool *pgxpool.Pool
}

func NewSourceRepository(pool *pgxpool.Pool) *SourceRepository {
	return &SourceRepository{pool: pool}
}

// GetByName returns the ingestion record for a source file, or nil when the
// file has never been ingested.
func (r *SourceRepository) GetByName(ctx context.Context, name string) (*domain.Source, error) {
	var s domain.Source
	err := r.pool.QueryRow(ctx,
		`SELECT name, sha256, chunk_count, ingested_at FROM sources WHERE name = $1`,
		name,
	).Scan(&s.Name, &s.SHA256, &s.ChunkCount, &s.IngestedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert records (or refreshes) the ingestion state of a source file.
func (r *SourceRepository) Upsert(ctx context.Context, s domain.Source) error {
	ingestedAt := s.IngestedAt
	if ingestedAt.IsZero() {
		ingestedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sources (name, sha256, chunk_count, ingested_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO UPDATE
		 SET sha256 = EXCLUDED.sha256,
		     chunk_count = EXCLUDED.chunk_count,
		     ingested_at = EXCLUDED.ingested_at`,
		s.Name, s.SHA256, s.ChunkCount, ingestedAt,
	)
	return err
}

// List returns all ingestion records, most recent first.
func (r *SourceRepository) List(ctx context.Context) ([]domain.Source, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, sha256, chunk_count, ingested_at FROM sources ORDER BY ingested_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []domain.Source
	for rows.Next() {
		var s domain.Source
		if err := rows.Scan(&s.Name, &s.SHA256, &s.ChunkCount, &s.IngestedAt); err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}
