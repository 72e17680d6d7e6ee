// Package transcripts persists processed call transcripts as standalone
// record documents: a header identifying the call plus a Markdown body
// holding the raw conversation and the items extracted from it.
package transcripts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/starford/mannaz/internal/analysis"
	"github.com/starford/mannaz/internal/dates"
	"github.com/starford/mannaz/internal/document"
	"github.com/starford/mannaz/internal/models"
	"github.com/starford/mannaz/internal/slug"
	"github.com/starford/mannaz/internal/storage"
)

// Dir is where transcript documents live, relative to the data root.
const Dir = "transcripts"

const noItems = "No items extracted yet."

// Writer renders and stores transcript documents.
type Writer struct {
	store storage.Provider
}

func NewWriter(store storage.Provider) *Writer {
	return &Writer{store: store}
}

// PathFor derives a transcript's document path from its creation date and
// title. Untitled calls fall back to a generic name.
func PathFor(t models.Transcript) string {
	title := t.Title
	if title == "" {
		title = "transcript"
	}
	return fmt.Sprintf("%s/%s-%s.md", Dir, t.CreatedAt.Format(dates.Day), slug.Make(title))
}

// Write stores the transcript with the analysis embedded under Extracted
// Items. The writer does not interpret the analysis beyond rendering it.
// It returns the path the document was written to.
func (w *Writer) Write(t models.Transcript, r analysis.Result) (string, error) {
	fields := []document.Field{
		{Key: "id", Value: t.ID},
		{Key: "title", Value: t.Title},
		{Key: "date", Value: dates.Format(t.CreatedAt)},
		{Key: "participants", Value: strings.Join(t.Participants, ", ")},
		{Key: "processed", Value: strconv.FormatBool(t.Processed)},
	}
	path := PathFor(t)
	return path, w.store.Write(path, document.Encode(fields, renderBody(t, r)))
}

func renderBody(t models.Transcript, r analysis.Result) string {
	title := t.Title
	if title == "" {
		title = "Call Transcript"
	}
	participants := "Not specified"
	if len(t.Participants) > 0 {
		participants = strings.Join(t.Participants, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Date:** %s\n", t.CreatedAt.Format(dates.Minute))
	fmt.Fprintf(&b, "**Participants:** %s\n\n", participants)
	b.WriteString("## Transcript Content\n\n")
	b.WriteString(strings.TrimRight(t.Content, "\n"))
	b.WriteString("\n\n## Extracted Items\n\n")

	items := extractedItems(r)
	if len(items) == 0 {
		b.WriteString(noItems + "\n")
		return b.String()
	}
	for _, item := range items {
		b.WriteString(item + "\n")
	}
	return b.String()
}

func extractedItems(r analysis.Result) []string {
	var items []string
	for _, a := range r.ManagerActions {
		items = append(items, actionLine(a))
	}
	for _, a := range r.ParticipantActions {
		items = append(items, actionLine(a))
	}
	for _, c := range r.Concerns {
		items = append(items, fmt.Sprintf("- **Concern:** %s (Severity: %s)", c.Content, c.Severity))
	}
	for _, d := range r.Decisions {
		items = append(items, "- **Decision:** "+d)
	}
	return items
}

func actionLine(a analysis.ActionItem) string {
	return fmt.Sprintf("- **Action Item:** %s (Assignee: %s)", a.Content, a.Assignee)
}
