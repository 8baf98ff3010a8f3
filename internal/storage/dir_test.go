package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSource_ListAndFetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guidance.pdf"), []byte("pdf-bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("plain text"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	src := NewDirSource(dir)
	ctx := context.Background()

	names, err := src.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"guidance.pdf", "notes.txt"}, names)

	data, err := src.Fetch(ctx, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("plain text"), data)
}

func TestDirSource_Fetch_RejectsTraversal(t *testing.T) {
	src := NewDirSource(t.TempDir())

	data, err := src.Fetch(context.Background(), "../etc/passwd")

	assert.Nil(t, data)
	assert.Error(t, err)
}

func TestDirSource_List_MissingDirectory(t *testing.T) {
	src := NewDirSource("/nonexistent/docs")

	names, err := src.List(context.Background())

	assert.Nil(t, names)
	assert.Error(t, err)
}
