package staff

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/starford/mannaz/internal/dates"
	"github.com/starford/mannaz/internal/models"
)

// Annotation recovery for note projections. The suffix grammar is
// "*(category[, from source], YYYY-MM-DD HH:MM)*" or "*(YYYY-MM-DD HH:MM)*".
var (
	noteTimestampRe = regexp.MustCompile(`\*\(.*?(\d{4}-\d{2}-\d{2} \d{2}:\d{2}).*?\)\*`)
	noteCategoryRe  = regexp.MustCompile(`\*\((.*?),`)
	noteSuffixRe    = regexp.MustCompile(`\s*\*\(.*?\)\*\s*$`)
)

// Notes projects a profile's Notes list into typed entries, splitting each
// stored line into content, category and timestamp. Entries keep their
// list position as a synthetic id.
func (r *Repository) Notes(id string) ([]models.Note, error) {
	p, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	notes := make([]models.Note, 0, len(p.Notes))
	for i, line := range p.Notes {
		notes = append(notes, parseNoteLine(id, i, line))
	}
	return notes, nil
}

func parseNoteLine(staffID string, i int, line string) models.Note {
	ts := time.Now()
	if m := noteTimestampRe.FindStringSubmatch(line); m != nil {
		if parsed, err := time.Parse(dates.Minute, m[1]); err == nil {
			ts = parsed
		}
	}
	category := "general"
	if m := noteCategoryRe.FindStringSubmatch(line); m != nil {
		category = m[1]
	}
	content := strings.TrimSpace(noteSuffixRe.ReplaceAllString(line, ""))
	return models.Note{
		ID:        fmt.Sprintf("%s-note-%d", staffID, i),
		StaffID:   staffID,
		Content:   content,
		Category:  category,
		Timestamp: ts,
	}
}

// Goals projects a profile's Goals list into typed entries. The store
// keeps only the title line per goal, so the remaining fields are
// synthesized.
func (r *Repository) Goals(id string) ([]models.Goal, error) {
	p, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	goals := make([]models.Goal, 0, len(p.Goals))
	for i, title := range p.Goals {
		goals = append(goals, models.Goal{
			ID:            fmt.Sprintf("%s-goal-%d", id, i),
			StaffID:       id,
			Title:         title,
			Status:        "in_progress",
			ProgressNotes: []string{},
		})
	}
	return goals, nil
}

// SaveGoal writes a goal's title back into the profile's Goals list: a
// matching synthetic id replaces that slot, anything else appends.
func (r *Repository) SaveGoal(g models.Goal) error {
	p, err := r.FindByID(g.StaffID)
	if err != nil {
		return err
	}
	found := false
	for i := range p.Goals {
		if fmt.Sprintf("%s-goal-%d", g.StaffID, i) == g.ID {
			p.Goals[i] = g.Title
			found = true
			break
		}
	}
	if !found {
		p.Goals = append(p.Goals, g.Title)
	}
	return r.Save(&p)
}
