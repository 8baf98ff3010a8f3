// Package storage provides document sources for the ingestion pipeline.
package storage

import "context"

// DocumentSource lists and fetches raw documents for ingestion.
type DocumentSource interface {
	// List returns the names of all available documents.
	List(ctx context.Context) ([]string, error)
	// Fetch returns the raw bytes of one document.
	Fetch(ctx context.Context, name string) ([]byte, error)
}
