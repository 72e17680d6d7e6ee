// Package reminders maintains the shared append-log of team reminders: a
// single document with a pending and a completed section. Section
// membership is the persisted status; entries move between sections and
// are never mutated in place.
package reminders

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/starford/mannaz/internal/dates"
	"github.com/starford/mannaz/internal/models"
	"github.com/starford/mannaz/internal/storage"
)

// Path is the shared log document under the data root.
const Path = "reminders.md"

const (
	titleLine        = "# Team Management Reminders"
	pendingHeading   = "## Pending Tasks"
	completedHeading = "## Completed Tasks"
	pendingComment   = "<!-- Tasks will be automatically added here -->"
	completedComment = "<!-- Completed tasks will be moved here -->"
)

var priorityIcons = map[models.Priority]string{
	models.PriorityLow:    "🟢",
	models.PriorityMedium: "🟡",
	models.PriorityHigh:   "🔴",
	models.PriorityUrgent: "🚨",
}

var iconPriorities = map[string]models.Priority{
	"🟢": models.PriorityLow,
	"🟡": models.PriorityMedium,
	"🔴": models.PriorityHigh,
	"🚨": models.PriorityUrgent,
	"⚪": models.PriorityMedium,
}

const defaultIcon = "⚪"

// StaffResolver resolves the profile links embedded in log entries. A
// failed lookup leaves the link empty; it never aborts an operation.
type StaffResolver interface {
	NameByID(id string) (string, bool)
	IDByName(name string) (string, bool)
}

// AppendOutcome reports how an append landed in the document.
type AppendOutcome struct {
	// SectionRepaired is set when the pending heading was missing and had
	// to be re-created before inserting.
	SectionRepaired bool
}

// CompleteOutcome reports what a complete operation did. Moved is false
// when no block carried the entry's id, which is a no-op, not an error.
type CompleteOutcome struct {
	Moved           bool
	SectionRepaired bool
}

// Log is the shared reminders document.
type Log struct {
	store storage.Provider
	staff StaffResolver
	log   *slog.Logger
}

// NewLog creates the append-log on top of store. staff resolves the
// "Related to" links.
func NewLog(store storage.Provider, staff StaffResolver, log *slog.Logger) *Log {
	return &Log{store: store, staff: staff, log: log}
}

func initialContent() string {
	return titleLine + "\n\n" +
		pendingHeading + "\n\n" + pendingComment + "\n\n" +
		completedHeading + "\n\n" + completedComment + "\n"
}

// load returns the log's lines, creating the document first if absent.
func (l *Log) load() ([]string, error) {
	data, err := l.store.Read(Path)
	if errors.Is(err, fs.ErrNotExist) {
		data = []byte(initialContent())
		if err := l.store.Write(Path, data); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}

func (l *Log) save(lines []string) error {
	return l.store.Write(Path, []byte(strings.Join(lines, "\n")))
}

// AppendPending renders the entry and inserts it at the top of the
// pending section, immediately after the heading and its leading blank
// or comment lines, so the newest entry surfaces first. A vandalized log
// missing the heading is repaired rather than silently dropping the
// entry.
func (l *Log) AppendPending(e models.Reminder) (AppendOutcome, error) {
	lines, err := l.load()
	if err != nil {
		return AppendOutcome{}, err
	}
	var out AppendOutcome
	idx := findHeading(lines, pendingHeading)
	if idx == -1 {
		l.log.Warn("reminders log is missing its pending heading, repairing", "path", Path)
		lines = repairSection(lines, pendingHeading)
		idx = findHeading(lines, pendingHeading)
		out.SectionRepaired = true
	}
	lines = splice(lines, insertionPoint(lines, idx), l.renderPendingBlock(e))
	return out, l.save(lines)
}

// Complete relocates the entry's block from wherever it sits into the
// completed section, stamping today's date as the completion marker. The
// block is found by its fenced id line.
func (l *Log) Complete(e models.Reminder) (CompleteOutcome, error) {
	lines, err := l.load()
	if err != nil {
		return CompleteOutcome{}, err
	}
	lines, found := removeBlock(lines, e.ID)
	if !found {
		return CompleteOutcome{}, nil
	}
	out := CompleteOutcome{Moved: true}
	idx := findHeading(lines, completedHeading)
	if idx == -1 {
		l.log.Warn("reminders log is missing its completed heading, repairing", "path", Path)
		lines = repairSection(lines, completedHeading)
		idx = findHeading(lines, completedHeading)
		out.SectionRepaired = true
	}
	lines = splice(lines, insertionPoint(lines, idx), l.renderCompletedBlock(e, time.Now()))
	return out, l.save(lines)
}

// renderPendingBlock renders one entry: a bullet line with the priority
// icon and due stamp, indented detail lines, the fenced id, and a blank
// separator.
func (l *Log) renderPendingBlock(e models.Reminder) []string {
	icon, ok := priorityIcons[e.Priority]
	if !ok {
		icon = defaultIcon
	}
	lines := []string{fmt.Sprintf("- %s **%s** (Due: %s)", icon, e.Title, e.DueDate.Format(dates.Day))}
	return append(l.appendDetails(lines, e), "")
}

func (l *Log) renderCompletedBlock(e models.Reminder, stamp time.Time) []string {
	lines := []string{fmt.Sprintf("- ✅ **%s** (Completed: %s)", e.Title, stamp.Format(dates.Day))}
	return append(l.appendDetails(lines, e), "")
}

func (l *Log) appendDetails(lines []string, e models.Reminder) []string {
	if e.Description != "" {
		lines = append(lines, "  - "+e.Description)
	}
	if e.StaffID != "" {
		if name, ok := l.staff.NameByID(e.StaffID); ok {
			lines = append(lines, "  - Related to: "+name)
		}
	}
	return append(lines, "  - ID: `"+e.ID+"`")
}

func findHeading(lines []string, heading string) int {
	for i, ln := range lines {
		if strings.TrimSpace(ln) == heading {
			return i
		}
	}
	return -1
}

// insertionPoint skips the blank and comment lines that follow a heading
// and returns the index of the first content line.
func insertionPoint(lines []string, headingIdx int) int {
	i := headingIdx + 1
	for i < len(lines) {
		t := strings.TrimSpace(lines[i])
		if t != "" && !strings.HasPrefix(t, "<!--") {
			break
		}
		i++
	}
	return i
}

func splice(lines []string, at int, block []string) []string {
	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:at]...)
	out = append(out, block...)
	return append(out, lines[at:]...)
}

// repairSection re-appends a missing section heading at the end of the
// document.
func repairSection(lines []string, heading string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return append(lines, "", heading, "")
}

// removeBlock deletes the entry whose fenced id line matches: from its
// column-0 bullet line through the id line, plus one trailing blank.
func removeBlock(lines []string, id string) ([]string, bool) {
	marker := "ID: `" + id + "`"
	for i, ln := range lines {
		if !strings.Contains(ln, marker) {
			continue
		}
		start := i
		for start > 0 && !strings.HasPrefix(lines[start], "- ") {
			start--
		}
		if !strings.HasPrefix(lines[start], "- ") {
			start = i
		}
		end := i + 1
		if end < len(lines) && strings.TrimSpace(lines[end]) == "" {
			end++
		}
		out := make([]string, 0, len(lines)-(end-start))
		out = append(out, lines[:start]...)
		out = append(out, lines[end:]...)
		return out, true
	}
	return lines, false
}
