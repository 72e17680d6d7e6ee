package transcripts

import (
	"strings"
	"testing"
	"time"

	"github.com/starford/mannaz/internal/analysis"
	"github.com/starford/mannaz/internal/document"
	"github.com/starford/mannaz/internal/models"
	"github.com/starford/mannaz/internal/storage"
)

func newWriter(t *testing.T) (*Writer, *storage.FS) {
	t.Helper()
	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return NewWriter(store), store
}

func sampleTranscript() models.Transcript {
	return models.Transcript{
		ID:           "t-1",
		Title:        "Q1 Planning Call",
		Content:      "James: hello\nSarah: hi\n",
		Participants: []string{"James", "Sarah"},
		Processed:    true,
		CreatedAt:    time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func TestPathFor(t *testing.T) {
	got := PathFor(sampleTranscript())
	want := "transcripts/2025-03-14-q1-planning-call.md"
	if got != want {
		t.Errorf("PathFor = %q, want %q", got, want)
	}

	untitled := sampleTranscript()
	untitled.Title = ""
	if got := PathFor(untitled); got != "transcripts/2025-03-14-transcript.md" {
		t.Errorf("untitled PathFor = %q", got)
	}
}

func TestWrite_HeaderAndBody(t *testing.T) {
	w, store := newWriter(t)
	res := analysis.Result{
		ManagerActions:     []analysis.ActionItem{{Content: "I will send the recap", Assignee: "Manager"}},
		ParticipantActions: []analysis.ActionItem{{Content: "Sarah will draft the plan", Assignee: "Sarah"}},
		Concerns:           []analysis.Concern{{Content: "Budget is tight", Severity: "High"}},
		Decisions:          []string{"Agreed to ship in May"},
	}

	path, err := w.Write(sampleTranscript(), res)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := store.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	doc := document.Decode(data)
	if doc.Degraded {
		t.Fatal("document degraded")
	}
	if doc.Header["id"] != "t-1" {
		t.Errorf("id = %q, want t-1", doc.Header["id"])
	}
	if doc.Header["date"] != "2025-03-14T10:30:00Z" {
		t.Errorf("date = %q", doc.Header["date"])
	}
	if doc.Header["participants"] != "James, Sarah" {
		t.Errorf("participants = %q", doc.Header["participants"])
	}
	if doc.Header["processed"] != "true" {
		t.Errorf("processed = %q", doc.Header["processed"])
	}

	for _, want := range []string{
		"# Q1 Planning Call",
		"**Date:** 2025-03-14 10:30",
		"**Participants:** James, Sarah",
		"## Transcript Content",
		"James: hello",
		"## Extracted Items",
		"- **Action Item:** I will send the recap (Assignee: Manager)",
		"- **Action Item:** Sarah will draft the plan (Assignee: Sarah)",
		"- **Concern:** Budget is tight (Severity: High)",
		"- **Decision:** Agreed to ship in May",
	} {
		if !strings.Contains(doc.Body, want) {
			t.Errorf("body missing %q\nbody:\n%s", want, doc.Body)
		}
	}
}

func TestWrite_EmptyAnalysisPlaceholder(t *testing.T) {
	w, store := newWriter(t)

	path, err := w.Write(sampleTranscript(), analysis.Result{})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := store.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.Contains(string(data), noItems) {
		t.Errorf("expected placeholder %q in:\n%s", noItems, data)
	}
}

func TestWrite_UntitledDefaults(t *testing.T) {
	w, store := newWriter(t)
	tr := sampleTranscript()
	tr.Title = ""
	tr.Participants = nil

	path, err := w.Write(tr, analysis.Result{})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := store.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	doc := document.Decode(data)
	if _, ok := doc.Header["title"]; ok {
		t.Error("empty title should be omitted from the header")
	}
	if !strings.Contains(doc.Body, "# Call Transcript") {
		t.Errorf("body missing default heading:\n%s", doc.Body)
	}
	if !strings.Contains(doc.Body, "**Participants:** Not specified") {
		t.Errorf("body missing participants fallback:\n%s", doc.Body)
	}
}
