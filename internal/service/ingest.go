package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/clearpath-legal/sponsorag/internal/domain"
	"github.com/clearpath-legal/sponsorag/internal/telemetry"
)

// ChunkStore defines the vector-store write boundary used by ingestion.
type ChunkStore interface {
	InsertChunks(ctx context.Context, chunks []domain.Chunk) ([]InsertFailure, error)
	DeleteBySource(ctx context.Context, source string) error
	MaxID(ctx context.Context) (int64, error)
}

// InsertFailure reports one rejected row from a batch insert.
type InsertFailure struct {
	ChunkID int64
	Source  string
	Err     error
}

// SourceTracker records which documents have been ingested.
type SourceTracker interface {
	GetByName(ctx context.Context, name string) (*domain.Source, error)
	Upsert(ctx context.Context, s domain.Source) error
}

// TextExtractor extracts plain text segments from a document.
type TextExtractor interface {
	Extract(name string, data []byte) ([]string, error)
	Supports(name string) bool
}

// IngestStats summarizes one ingestion run.
type IngestStats struct {
	Ingested int
	Skipped  int
	Chunks   int
	Rejected int
	Failed   []string
}

// IngestService turns source documents into embedded chunks in the vector
// store. Unchanged files (same content hash) are skipped; changed files have
// their chunks replaced. Chunk IDs are monotonic within a run, seeded from
// the highest stored ID.
type IngestService struct {
	embedder  EmbeddingClient
	store     ChunkStore
	sources   SourceTracker
	extractor TextExtractor
	chunkCfg  ChunkConfig
	embedWait time.Duration
}

func NewIngestService(embedder EmbeddingClient, store ChunkStore, sources SourceTracker, extractor TextExtractor) *IngestService {
	return &IngestService{
		embedder:  embedder,
		store:     store,
		sources:   sources,
		extractor: extractor,
		chunkCfg:  DefaultChunkConfig(),
	}
}

// SetEmbedTimeout bounds each per-chunk embedding call.
func (s *IngestService) SetEmbedTimeout(d time.Duration) {
	s.embedWait = d
}

// Document is one raw file handed to ingestion.
type Document struct {
	Name string
	Data []byte
}

// IngestDocuments runs one ingestion pass over the given documents.
// Per-document failures are recorded in the stats, not fatal to the run.
func (s *IngestService) IngestDocuments(ctx context.Context, docs []Document) (*IngestStats, error) {
	ctx, span := telemetry.StartSpan(ctx, "IngestService.IngestDocuments", telemetry.SpanAttributes{
		Operation: "ingest",
	})
	defer span.End()

	stats := &IngestStats{}

	nextID, err := s.store.MaxID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to seed chunk IDs: %w", err)
	}
	nextID++

	for _, doc := range docs {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		if !s.extractor.Supports(doc.Name) {
			log.Printf("ingest: skipping unsupported file %s", doc.Name)
			stats.Skipped++
			continue
		}

		hash := contentHash(doc.Data)

		existing, err := s.sources.GetByName(ctx, doc.Name)
		if err != nil {
			return stats, fmt.Errorf("failed to check source %s: %w", doc.Name, err)
		}
		if existing != nil && existing.SHA256 == hash {
			stats.Skipped++
			continue
		}

		telemetry.AddBreadcrumb(ctx, "ingest", doc.Name)
		inserted, rejected, err := s.ingestOne(ctx, doc, hash, &nextID)
		if err != nil {
			log.Printf("ingest: %s failed: %v", doc.Name, err)
			telemetry.CaptureError(ctx, fmt.Errorf("ingest %s: %w", doc.Name, err))
			stats.Failed = append(stats.Failed, doc.Name)
			continue
		}

		stats.Ingested++
		stats.Chunks += inserted
		stats.Rejected += rejected
	}

	return stats, nil
}

func (s *IngestService) ingestOne(ctx context.Context, doc Document, hash string, nextID *int64) (int, int, error) {
	segments, err := s.extractor.Extract(doc.Name, doc.Data)
	if err != nil {
		return 0, 0, fmt.Errorf("extraction failed: %w", err)
	}

	var chunks []domain.Chunk
	rejected := 0
	for _, segment := range segments {
		for _, text := range chunkText(segment, s.chunkCfg) {
			embedCtx, cancel := withTimeout(ctx, s.embedWait)
			embedding, err := s.embedder.GenerateEmbedding(embedCtx, text)
			cancel()
			if err != nil {
				// A chunk that cannot be embedded is dropped, never
				// stored without a valid vector.
				log.Printf("ingest: rejecting chunk from %s: %v", doc.Name, err)
				rejected++
				continue
			}

			chunks = append(chunks, domain.Chunk{
				ID:        *nextID,
				Text:      text,
				Embedding: embedding,
				Source:    doc.Name,
			})
			*nextID++
		}
	}

	// A document whose every chunk failed to embed signals an embedding
	// outage, not an empty document. Fail it without touching the stored
	// chunks or the recorded hash, so the next pass retries instead of
	// replacing good data with nothing.
	if len(chunks) == 0 && rejected > 0 {
		return 0, rejected, fmt.Errorf("all %d chunks rejected by embedding", rejected)
	}

	// Replace-by-source: drop stale chunks before inserting the new set.
	if err := s.store.DeleteBySource(ctx, doc.Name); err != nil {
		return 0, rejected, fmt.Errorf("failed to delete stale chunks: %w", err)
	}

	failures, err := s.store.InsertChunks(ctx, chunks)
	if err != nil {
		return 0, rejected, fmt.Errorf("failed to insert chunks: %w", err)
	}
	for _, f := range failures {
		log.Printf("ingest: chunk %d from %s rejected at storage: %v", f.ChunkID, f.Source, f.Err)
	}
	rejected += len(failures)
	inserted := len(chunks) - len(failures)

	if err := s.sources.Upsert(ctx, domain.Source{
		Name:       doc.Name,
		SHA256:     hash,
		ChunkCount: inserted,
	}); err != nil {
		return inserted, rejected, fmt.Errorf("failed to record source: %w", err)
	}

	return inserted, rejected, nil
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
