//go:build sqlite_fts5

package index

import (
	"testing"
	"time"
)

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM documents_fts`).Scan(&count); err != nil {
		t.Fatalf("documents_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	row := DocumentRow{
		Path:      "staff/fts.md",
		Kind:      KindProfile,
		Title:     "FTS Profile",
		Checksum:  "f1",
		UpdatedAt: time.Now(),
	}
	if err := db.Upsert(row, "Mannaz provides powerful full-text search capabilities."); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	results, err := db.Search("powerful", "", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Path != "staff/fts.md" {
		t.Errorf("path = %q", results[0].Path)
	}
	if results[0].Kind != KindProfile {
		t.Errorf("kind = %q", results[0].Kind)
	}
	// FTS5 snippet should contain bold markers.
	if results[0].Snippet == "" {
		t.Error("expected non-empty snippet")
	}
}

func TestFTS5_KindFilter(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.Upsert(DocumentRow{Path: "staff/a.md", Kind: KindProfile, Title: "A", Checksum: "1", UpdatedAt: now},
		"shared keyword profilecontent")
	_ = db.Upsert(DocumentRow{Path: "transcripts/b.md", Kind: KindTranscript, Title: "B", Checksum: "2", UpdatedAt: now},
		"shared keyword transcriptcontent")

	results, err := db.Search("keyword", KindTranscript, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "transcripts/b.md" {
		t.Errorf("kind filter results = %+v", results)
	}
}

func TestFTS5_DeleteRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(DocumentRow{Path: "gone.md", Checksum: "g", UpdatedAt: time.Now()}, "vanishing content")
	_ = db.Delete("gone.md")

	results, _ := db.Search("vanishing", "", 10)
	for _, r := range results {
		if r.Path == "gone.md" {
			t.Error("deleted document still in FTS index")
		}
	}
}

func TestFTS5_UpsertReplacesContent(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.Upsert(DocumentRow{Path: "evo.md", Title: "Old", Checksum: "1", UpdatedAt: now}, "original text")
	_ = db.Upsert(DocumentRow{Path: "evo.md", Title: "New", Checksum: "2", UpdatedAt: now}, "replacement text")

	results, _ := db.Search("original", "", 10)
	if len(results) != 0 {
		t.Error("old FTS content should be gone")
	}
	results, _ = db.Search("replacement", "", 10)
	if len(results) != 1 || results[0].Title != "New" {
		t.Errorf("FTS not updated: %+v", results)
	}
}
