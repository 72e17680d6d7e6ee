// Package staff maps profile records to and from their document files.
package staff

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/starford/mannaz/internal/apperr"
	"github.com/starford/mannaz/internal/dates"
	"github.com/starford/mannaz/internal/document"
	"github.com/starford/mannaz/internal/models"
	"github.com/starford/mannaz/internal/slug"
	"github.com/starford/mannaz/internal/storage"
)

// ListField names one of a profile's free-text list fields.
type ListField string

const (
	FieldSkills       ListField = "skills"
	FieldGoals        ListField = "goals"
	FieldNotes        ListField = "notes"
	FieldAchievements ListField = "achievements"
	FieldConcerns     ListField = "concerns"
)

// Annotation is the parenthetical suffix composed onto an appended list
// item: "(category, from source, timestamp)". Category defaults to
// "general" when a source is given without one.
type Annotation struct {
	Category string
	Source   string
}

func (a Annotation) suffix(now time.Time) string {
	ts := now.Format(dates.Minute)
	if a.Category == "" && a.Source == "" {
		return " *(" + ts + ")*"
	}
	cat := a.Category
	if cat == "" {
		cat = "general"
	}
	s := " *(" + cat
	if a.Source != "" {
		s += ", from " + a.Source
	}
	return s + ", " + ts + ")*"
}

// Repository stores one document per profile under Dir, keyed by the
// sanitized display name.
type Repository struct {
	store storage.Provider
	log   *slog.Logger
}

// NewRepository creates a profile repository on top of store.
func NewRepository(store storage.Provider, log *slog.Logger) *Repository {
	return &Repository{store: store, log: log}
}

// PathFor returns the document path a display name resolves to.
func PathFor(name string) string {
	return Dir + "/" + slug.Make(name) + ".md"
}

// Save stamps the profile's update time and rewrites its whole document.
// Two names that sanitize to the same slug collide; the later save wins
// and the collision is logged, not prevented.
func (r *Repository) Save(p *models.Profile) error {
	now := time.Now()
	p.UpdatedAt = now
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	path := PathFor(p.Name)
	if data, err := r.store.Read(path); err == nil {
		existing := document.Decode(data)
		if id := existing.Header["id"]; id != "" && id != p.ID {
			r.log.Warn("slug collision: overwriting profile file that holds a different id",
				"path", path, "existing_id", id, "id", p.ID)
		}
	}
	return r.store.Write(path, render(*p, now))
}

// FindByID scans every profile document, decoding headers only, and
// returns the first id match. O(n) per lookup; the directory is expected
// to stay small and no index is consulted.
func (r *Repository) FindByID(id string) (models.Profile, error) {
	metas, err := r.store.List(Dir)
	if err != nil {
		return models.Profile{}, err
	}
	for _, m := range metas {
		data, err := r.store.Read(m.Path)
		if err != nil {
			return models.Profile{}, err
		}
		if document.Decode(data).Header["id"] != id {
			continue
		}
		p, err := decodeProfile(data)
		if err != nil {
			r.log.Warn("profile failed validation", "path", m.Path, "error", err)
			return models.Profile{}, apperr.ErrNotFound
		}
		return p, nil
	}
	return models.Profile{}, apperr.ErrNotFound
}

// FindByName resolves the name through the sanitizer and reads the file
// directly. Only an exact sanitized match is found.
func (r *Repository) FindByName(name string) (models.Profile, error) {
	data, err := r.store.Read(PathFor(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Profile{}, apperr.ErrNotFound
		}
		return models.Profile{}, err
	}
	p, err := decodeProfile(data)
	if err != nil {
		r.log.Warn("profile failed validation", "name", name, "error", err)
		return models.Profile{}, apperr.ErrNotFound
	}
	return p, nil
}

// ListAll decodes every profile document. A file that fails validation is
// skipped with a warning; partial results are returned.
func (r *Repository) ListAll() ([]models.Profile, error) {
	metas, err := r.store.List(Dir)
	if err != nil {
		return nil, err
	}
	var out []models.Profile
	for _, m := range metas {
		data, err := r.store.Read(m.Path)
		if err != nil {
			r.log.Warn("skipping unreadable profile", "path", m.Path, "error", err)
			continue
		}
		p, err := decodeProfile(data)
		if err != nil {
			r.log.Warn("skipping invalid profile", "path", m.Path, "error", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Delete resolves the profile by id and removes its file. The boolean
// reports whether a file was actually removed.
func (r *Repository) Delete(id string) (bool, error) {
	p, err := r.FindByID(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := r.store.Delete(PathFor(p.Name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AppendListItem appends a composed line to one of the profile's list
// fields and saves. Read-modify-write, last writer wins; acceptable in
// the single-process scope.
func (r *Repository) AppendListItem(id string, field ListField, text string, ann *Annotation) error {
	p, err := r.FindByID(id)
	if err != nil {
		return err
	}
	line := text
	if ann != nil {
		line += ann.suffix(time.Now())
	}
	switch field {
	case FieldSkills:
		p.Skills = append(p.Skills, line)
	case FieldGoals:
		p.Goals = append(p.Goals, line)
	case FieldNotes:
		p.Notes = append(p.Notes, line)
	case FieldAchievements:
		p.Achievements = append(p.Achievements, line)
	case FieldConcerns:
		p.Concerns = append(p.Concerns, line)
	default:
		return fmt.Errorf("staff: unknown list field %q", field)
	}
	return r.Save(&p)
}

// decodeProfile turns raw document bytes into a Profile. Missing id or
// name, or an unparseable timestamp, fails validation.
func decodeProfile(data []byte) (models.Profile, error) {
	doc := document.Decode(data)
	h := doc.Header
	if h["id"] == "" {
		return models.Profile{}, errors.New("staff: missing id")
	}
	if h["name"] == "" {
		return models.Profile{}, errors.New("staff: missing name")
	}
	p := models.Profile{
		ID:           h["id"],
		Name:         h["name"],
		Email:        h["email"],
		Role:         h["role"],
		Department:   h["department"],
		Manager:      h["manager"],
		Skills:       document.ExtractList(doc.Body, headingSkills),
		Goals:        document.ExtractList(doc.Body, headingGoals),
		Notes:        document.ExtractList(doc.Body, headingNotes),
		Achievements: document.ExtractList(doc.Body, headingAchievements),
		Concerns:     document.ExtractList(doc.Body, headingConcerns),
	}
	var err error
	if p.CreatedAt, err = dates.Parse(h["created_at"]); err != nil {
		return models.Profile{}, fmt.Errorf("staff: created_at: %w", err)
	}
	if p.UpdatedAt, err = dates.Parse(h["updated_at"]); err != nil {
		return models.Profile{}, fmt.Errorf("staff: updated_at: %w", err)
	}
	if p.HireDate, err = optionalDate(h, "hire_date"); err != nil {
		return models.Profile{}, err
	}
	if p.LastOneOnOne, err = optionalDate(h, "last_one_on_one"); err != nil {
		return models.Profile{}, err
	}
	if p.NextReview, err = optionalDate(h, "next_review"); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func optionalDate(h map[string]string, key string) (*time.Time, error) {
	v := h[key]
	if v == "" {
		return nil, nil
	}
	t, err := dates.Parse(v)
	if err != nil {
		return nil, fmt.Errorf("staff: %s: %w", key, err)
	}
	return &t, nil
}
