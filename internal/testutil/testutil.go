// Package testutil provides shared test helpers for setting up data
// directories and search indexes.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/starford/mannaz/internal/index"
	"github.com/starford/mannaz/internal/storage"
)

// TestDB opens a search index on a throwaway database file. SQLite
// creates the file on first use; t.TempDir handles removal.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestDataDir creates a temporary data directory with a storage.Provider
// rooted at it.
func TestDataDir(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}
