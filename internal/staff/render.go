package staff

import (
	"strings"
	"time"

	"github.com/starford/mannaz/internal/dates"
	"github.com/starford/mannaz/internal/document"
	"github.com/starford/mannaz/internal/models"
)

// Dir is the profile subdirectory under the data root.
const Dir = "staff"

// Headings and placeholders for the profile body's list sections.
const (
	headingSkills       = "## Skills"
	headingGoals        = "## Current Goals"
	headingNotes        = "## Notes"
	headingAchievements = "## Achievements"
	headingConcerns     = "## Concerns"

	placeholderSkills       = "No skills listed yet"
	placeholderGoals        = "No current goals"
	placeholderNotes        = "No notes yet"
	placeholderAchievements = "No achievements recorded yet"
	placeholderConcerns     = "No concerns noted"
)

const notSpecified = "Not specified"

// render produces the full document for a profile. The whole file is
// rewritten on every save; there is no partial patching.
func render(p models.Profile, now time.Time) []byte {
	fields := []document.Field{
		{Key: "id", Value: p.ID},
		{Key: "name", Value: p.Name},
		{Key: "email", Value: p.Email},
		{Key: "role", Value: p.Role},
		{Key: "department", Value: p.Department},
		{Key: "hire_date", Value: formatOptional(p.HireDate)},
		{Key: "manager", Value: p.Manager},
		{Key: "last_one_on_one", Value: formatOptional(p.LastOneOnOne)},
		{Key: "next_review", Value: formatOptional(p.NextReview)},
		{Key: "created_at", Value: dates.Format(p.CreatedAt)},
		{Key: "updated_at", Value: dates.Format(p.UpdatedAt)},
	}
	return document.Encode(fields, renderBody(p, now))
}

func renderBody(p models.Profile, now time.Time) string {
	var b strings.Builder
	b.WriteString("\n# " + p.Name + "\n\n")
	b.WriteString("## Overview\n")
	b.WriteString("- **Role:** " + orNotSpecified(p.Role) + "\n")
	b.WriteString("- **Department:** " + orNotSpecified(p.Department) + "\n")
	b.WriteString("- **Email:** " + orNotSpecified(p.Email) + "\n")
	b.WriteString("- **Manager:** " + orNotSpecified(p.Manager) + "\n\n")
	b.WriteString(document.RenderList(headingSkills, p.Skills, placeholderSkills) + "\n\n")
	b.WriteString(document.RenderList(headingGoals, p.Goals, placeholderGoals) + "\n\n")
	b.WriteString(document.RenderList(headingNotes, p.Notes, placeholderNotes) + "\n\n")
	b.WriteString(document.RenderList(headingAchievements, p.Achievements, placeholderAchievements) + "\n\n")
	b.WriteString(document.RenderList(headingConcerns, p.Concerns, placeholderConcerns) + "\n\n")
	b.WriteString("---\n*Last updated: " + now.Format(dates.Minute) + "*\n")
	return b.String()
}

func orNotSpecified(v string) string {
	if v == "" {
		return notSpecified
	}
	return v
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return dates.Format(*t)
}
