package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirSource serves documents from a local directory. Subdirectories are not
// walked; the knowledge base is a flat set of files.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// List returns the file names in the directory, in lexical order.
func (s *DirSource) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read document directory %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Fetch reads one document from the directory.
func (s *DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	// Reject path traversal out of the document directory.
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid document name: %s", name)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", name, err)
	}
	return data, nil
}
