// Package jobs runs background ingestion of the document knowledge base.
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/clearpath-legal/sponsorag/internal/service"
	"github.com/clearpath-legal/sponsorag/internal/storage"
)

// Ingester runs one ingestion pass over a set of documents.
type Ingester interface {
	IngestDocuments(ctx context.Context, docs []service.Document) (*service.IngestStats, error)
}

// IngestWorker polls a document source and feeds new or changed documents
// into the ingestion pipeline. Unchanged documents are cheap: the pipeline
// skips them by content hash.
type IngestWorker struct {
	source       storage.DocumentSource
	ingester     Ingester
	pollInterval time.Duration
	stopChan     chan struct{}
	doneChan     chan struct{}
}

// NewIngestWorker creates a new IngestWorker instance
func NewIngestWorker(source storage.DocumentSource, ingester Ingester, pollInterval time.Duration) *IngestWorker {
	return &IngestWorker{
		source:       source,
		ingester:     ingester,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
		doneChan:     make(chan struct{}),
	}
}

// Start begins the worker's polling loop. An immediate pass runs on start so
// a fresh deployment serves answers without waiting a full interval.
func (w *IngestWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	defer close(w.doneChan)

	log.Printf("Ingest worker started with poll interval: %v", w.pollInterval)

	if err := w.RunOnce(ctx); err != nil {
		log.Printf("Error running ingestion pass: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("Ingest worker stopped: context cancelled")
			return
		case <-w.stopChan:
			log.Println("Ingest worker stopped: stop signal received")
			return
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil {
				log.Printf("Error running ingestion pass: %v", err)
			}
		}
	}
}

// Stop gracefully stops the worker
func (w *IngestWorker) Stop() {
	close(w.stopChan)
	<-w.doneChan
	log.Println("Ingest worker shutdown complete")
}

// RunOnce executes a single ingestion pass over the document source.
func (w *IngestWorker) RunOnce(ctx context.Context) error {
	names, err := w.source.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(names) == 0 {
		return nil
	}

	docs := make([]service.Document, 0, len(names))
	for _, name := range names {
		data, err := w.source.Fetch(ctx, name)
		if err != nil {
			log.Printf("Skipping document %s: %v", name, err)
			continue
		}
		docs = append(docs, service.Document{Name: name, Data: data})
	}

	stats, err := w.ingester.IngestDocuments(ctx, docs)
	if err != nil {
		return fmt.Errorf("ingestion pass failed: %w", err)
	}

	if stats.Ingested > 0 || len(stats.Failed) > 0 {
		log.Printf("Ingestion pass: %d ingested, %d skipped, %d chunks, %d rejected, %d failed",
			stats.Ingested, stats.Skipped, stats.Chunks, stats.Rejected, len(stats.Failed))
	}
	return nil
}
