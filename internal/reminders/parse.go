package reminders

import (
	"errors"
	"io/fs"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/starford/mannaz/internal/dates"
	"github.com/starford/mannaz/internal/models"
)

var (
	dueRe       = regexp.MustCompile(`^- (\S+) \*\*(.*?)\*\* \(Due: ([\d-]+)\)`)
	completedRe = regexp.MustCompile(`^- ✅ \*\*(.*?)\*\* \(Completed: ([\d-]+)\)`)
	fencedIDRe  = regexp.MustCompile("`([^`]+)`")
)

// ParseAll re-parses the whole log into typed entries in document order.
//
// The scan is a line-oriented state machine: the section state switches
// on heading lines and decides each entry's status by position; an entry
// accumulator opens on a recognized bullet line (flushing the previous
// entry first) and consumes the indented detail lines that follow. A
// bullet with a malformed date is discarded without aborting the scan,
// and an unresolvable "Related to" name leaves the link empty but keeps
// the entry. Entries missing a fenced id get a fresh one.
func (l *Log) ParseAll() ([]models.Reminder, error) {
	data, err := l.store.Read(Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var (
		out     []models.Reminder
		acc     models.Reminder
		open    bool
		section models.ReminderStatus
	)
	flush := func() {
		if !open {
			return
		}
		if acc.ID == "" {
			acc.ID = uuid.NewString()
		}
		out = append(out, acc)
		open = false
	}

	for _, raw := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(raw)

		if strings.HasPrefix(trimmed, "## ") {
			flush()
			switch trimmed {
			case pendingHeading:
				section = models.StatusPending
			case completedHeading:
				section = models.StatusCompleted
			default:
				section = ""
			}
			continue
		}

		// Detail lines attach to the open entry. Indentation is decided
		// on the raw line; trimming first would turn details into
		// bullets.
		if open && strings.HasPrefix(raw, "  - ") {
			detail := strings.TrimSpace(raw[4:])
			switch {
			case strings.HasPrefix(detail, "Related to:"):
				name := strings.TrimSpace(strings.TrimPrefix(detail, "Related to:"))
				if id, ok := l.staff.IDByName(name); ok {
					acc.StaffID = id
				}
			case strings.HasPrefix(detail, "ID:"):
				if m := fencedIDRe.FindStringSubmatch(detail); m != nil {
					acc.ID = m[1]
				}
			default:
				acc.Description = detail
			}
			continue
		}

		if section == "" || !strings.HasPrefix(trimmed, "- ") || !strings.Contains(trimmed, "**") {
			continue
		}
		flush()
		if m := dueRe.FindStringSubmatch(trimmed); m != nil {
			due, err := time.Parse(dates.Day, m[3])
			if err != nil {
				continue
			}
			acc = models.Reminder{
				Title:     m[2],
				DueDate:   due,
				Priority:  iconPriority(m[1]),
				Status:    section,
				CreatedAt: time.Now(),
			}
			open = true
		} else if m := completedRe.FindStringSubmatch(trimmed); m != nil {
			done, err := time.Parse(dates.Day, m[2])
			if err != nil {
				continue
			}
			acc = models.Reminder{
				Title:       m[1],
				DueDate:     done,
				CompletedAt: &done,
				Priority:    models.PriorityMedium,
				Status:      section,
				CreatedAt:   time.Now(),
			}
			open = true
		}
	}
	flush()
	return out, nil
}

// iconPriority recovers an entry's priority from its rendered icon.
// Unrecognized icons parse as medium.
func iconPriority(icon string) models.Priority {
	if p, ok := iconPriorities[icon]; ok {
		return p
	}
	return models.PriorityMedium
}
