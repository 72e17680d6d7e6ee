// Package teamservice implements the management operations exposed to
// the dispatch layers: profile lifecycle, notes and goals, the shared
// reminders log, transcript processing and document search. The REST and
// MCP surfaces call into this package and never touch the stores
// directly.
package teamservice

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/starford/mannaz/internal/apperr"
	"github.com/starford/mannaz/internal/dates"
	"github.com/starford/mannaz/internal/document"
	"github.com/starford/mannaz/internal/index"
	"github.com/starford/mannaz/internal/models"
	"github.com/starford/mannaz/internal/reminders"
	"github.com/starford/mannaz/internal/staff"
	"github.com/starford/mannaz/internal/storage"
	"github.com/starford/mannaz/internal/transcripts"
)

// Manager identifies the operator running the assistant. Transcript
// coaching notes are filed on this profile, which is created from these
// fields on first use.
type Manager struct {
	Name       string
	Role       string
	Department string
}

// Service coordinates the profile repository, the reminders log, the
// transcript writer and the search index behind one operation surface.
type Service struct {
	store       storage.Provider
	staff       *staff.Repository
	reminders   *reminders.Log
	transcripts *transcripts.Writer
	db          *index.DB
	manager     Manager
	logger      *slog.Logger
}

// NewService wires the service and its record-store components on top of
// the provider and the search index.
func NewService(store storage.Provider, db *index.DB, manager Manager, logger *slog.Logger) *Service {
	repo := staff.NewRepository(store, logger)
	return &Service{
		store:       store,
		staff:       repo,
		reminders:   reminders.NewLog(store, &staffResolver{repo: repo}, logger),
		transcripts: transcripts.NewWriter(store),
		db:          db,
		manager:     manager,
		logger:      logger,
	}
}

// staffResolver adapts the repository to the reminder log's link
// resolution interface. A failed lookup reports absence so a dangling
// staff reference degrades to an unlinked entry.
type staffResolver struct {
	repo *staff.Repository
}

func (r *staffResolver) NameByID(id string) (string, bool) {
	p, err := r.repo.FindByID(id)
	if err != nil {
		return "", false
	}
	return p.Name, true
}

func (r *staffResolver) IDByName(name string) (string, bool) {
	p, err := r.repo.FindByName(name)
	if err != nil {
		return "", false
	}
	return p.ID, true
}

// CreateStaffRequest carries the caller-supplied fields for a new
// profile. Name is required, everything else optional.
type CreateStaffRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	Manager    string `json:"manager,omitempty"`
}

// UpdateStaffRequest carries optional field updates. Nil pointers leave
// the stored value unchanged.
type UpdateStaffRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty"`
	Manager    *string `json:"manager,omitempty"`
}

// StaffSummary is the lightweight projection returned by ListStaff.
type StaffSummary struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Role         string     `json:"role,omitempty"`
	Department   string     `json:"department,omitempty"`
	LastOneOnOne *time.Time `json:"last_one_on_one,omitempty"`
}

// AddNoteRequest files a note on a profile. Category and source become
// part of the stored annotation.
type AddNoteRequest struct {
	StaffID  string `json:"staff_id"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
	Source   string `json:"source,omitempty"`
}

// AddGoalRequest files a goal on a profile. The store keeps the title
// line only; description and target date are validated and dropped.
type AddGoalRequest struct {
	StaffID     string `json:"staff_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TargetDate  string `json:"target_date,omitempty"`
}

// CreateStaff stores a new profile under a fresh id and indexes it.
func (s *Service) CreateStaff(_ context.Context, req CreateStaffRequest) (models.Profile, error) {
	if strings.TrimSpace(req.Name) == "" {
		return models.Profile{}, fmt.Errorf("%w: name is required", apperr.ErrInvalid)
	}
	p := models.Profile{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(req.Name),
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
		Manager:    req.Manager,
	}
	if err := s.staff.Save(&p); err != nil {
		return models.Profile{}, err
	}
	s.reindex(staff.PathFor(p.Name))
	return normalizeProfile(p), nil
}

// UpdateStaff applies the non-nil request fields to an existing profile.
// A name change moves the record to its new file; moving onto a file
// owned by a different profile is refused.
func (s *Service) UpdateStaff(_ context.Context, id string, req UpdateStaffRequest) (models.Profile, error) {
	p, err := s.staff.FindByID(id)
	if err != nil {
		return models.Profile{}, err
	}
	oldPath := staff.PathFor(p.Name)
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return models.Profile{}, fmt.Errorf("%w: name cannot be empty", apperr.ErrInvalid)
		}
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Role != nil {
		p.Role = *req.Role
	}
	if req.Department != nil {
		p.Department = *req.Department
	}
	if req.Manager != nil {
		p.Manager = *req.Manager
	}
	newPath := staff.PathFor(p.Name)
	if newPath != oldPath {
		if data, err := s.store.Read(newPath); err == nil {
			if otherID := document.Decode(data).Header["id"]; otherID != "" && otherID != p.ID {
				return models.Profile{}, fmt.Errorf("%w: %s already holds another profile", apperr.ErrConflict, newPath)
			}
		}
	}
	if err := s.staff.Save(&p); err != nil {
		return models.Profile{}, err
	}
	if newPath != oldPath {
		if err := s.store.Delete(oldPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("could not remove renamed profile file", "path", oldPath, "error", err)
		}
		s.dropIndex(oldPath)
	}
	s.reindex(newPath)
	return normalizeProfile(p), nil
}

// GetStaffByID returns one profile by record id.
func (s *Service) GetStaffByID(_ context.Context, id string) (models.Profile, error) {
	p, err := s.staff.FindByID(id)
	if err != nil {
		return models.Profile{}, err
	}
	return normalizeProfile(p), nil
}

// GetStaffByName returns one profile by display name, case-insensitive.
func (s *Service) GetStaffByName(_ context.Context, name string) (models.Profile, error) {
	p, err := s.staff.FindByName(name)
	if err != nil {
		return models.Profile{}, err
	}
	return normalizeProfile(p), nil
}

// ListStaff returns a summary row per stored profile.
func (s *Service) ListStaff(_ context.Context) ([]StaffSummary, error) {
	profiles, err := s.staff.ListAll()
	if err != nil {
		return nil, err
	}
	items := make([]StaffSummary, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, StaffSummary{
			ID:           p.ID,
			Name:         p.Name,
			Role:         p.Role,
			Department:   p.Department,
			LastOneOnOne: p.LastOneOnOne,
		})
	}
	return items, nil
}

// DeleteStaff removes a profile and its index entry.
func (s *Service) DeleteStaff(_ context.Context, id string) error {
	p, err := s.staff.FindByID(id)
	if err != nil {
		return err
	}
	removed, err := s.staff.Delete(id)
	if err != nil {
		return err
	}
	if removed {
		s.dropIndex(staff.PathFor(p.Name))
	}
	return nil
}

// AddNote appends an annotated note line to the profile's notes list.
func (s *Service) AddNote(_ context.Context, req AddNoteRequest) error {
	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("%w: content is required", apperr.ErrInvalid)
	}
	p, err := s.staff.FindByID(req.StaffID)
	if err != nil {
		return err
	}
	ann := &staff.Annotation{Category: req.Category, Source: req.Source}
	if err := s.staff.AppendListItem(p.ID, staff.FieldNotes, req.Content, ann); err != nil {
		return err
	}
	s.reindex(staff.PathFor(p.Name))
	return nil
}

// StaffNotes returns the annotation-stripped note projections for one
// profile, oldest first.
func (s *Service) StaffNotes(_ context.Context, staffID string) ([]models.Note, error) {
	notes, err := s.staff.Notes(staffID)
	if err != nil {
		return nil, err
	}
	return nonNilSlice(notes), nil
}

// AddGoal appends a goal title to the profile and returns the stored
// entry under its slot-addressed id, the one UpdateGoalProgress accepts.
func (s *Service) AddGoal(_ context.Context, req AddGoalRequest) (models.Goal, error) {
	if strings.TrimSpace(req.Title) == "" {
		return models.Goal{}, fmt.Errorf("%w: title is required", apperr.ErrInvalid)
	}
	if req.TargetDate != "" {
		if _, err := dates.Parse(req.TargetDate); err != nil {
			return models.Goal{}, fmt.Errorf("%w: target_date: %v", apperr.ErrInvalid, err)
		}
	}
	p, err := s.staff.FindByID(req.StaffID)
	if err != nil {
		return models.Goal{}, err
	}
	// An id that matches no slot appends.
	if err := s.staff.SaveGoal(models.Goal{StaffID: p.ID, Title: strings.TrimSpace(req.Title)}); err != nil {
		return models.Goal{}, err
	}
	s.reindex(staff.PathFor(p.Name))
	goals, err := s.staff.Goals(p.ID)
	if err != nil {
		return models.Goal{}, err
	}
	if len(goals) == 0 {
		return models.Goal{}, fmt.Errorf("teamservice: goal for %s not stored", p.ID)
	}
	return goals[len(goals)-1], nil
}

// StaffGoals returns the goal projections for one profile.
func (s *Service) StaffGoals(_ context.Context, staffID string) ([]models.Goal, error) {
	goals, err := s.staff.Goals(staffID)
	if err != nil {
		return nil, err
	}
	return nonNilSlice(goals), nil
}

// UpdateGoalProgress records progress against a slot-addressed goal id as
// a categorized note on the owning profile. The store keeps no per-goal
// metadata, so the note is the durable progress record.
func (s *Service) UpdateGoalProgress(_ context.Context, goalID, progress, status string) (models.Goal, error) {
	if strings.TrimSpace(progress) == "" {
		return models.Goal{}, fmt.Errorf("%w: progress note is required", apperr.ErrInvalid)
	}
	staffID, slot, ok := splitGoalID(goalID)
	if !ok {
		return models.Goal{}, fmt.Errorf("%w: malformed goal id %q", apperr.ErrInvalid, goalID)
	}
	goals, err := s.staff.Goals(staffID)
	if err != nil {
		return models.Goal{}, err
	}
	if slot >= len(goals) {
		return models.Goal{}, fmt.Errorf("%w: goal %s", apperr.ErrNotFound, goalID)
	}
	g := goals[slot]
	content := fmt.Sprintf("Progress on %q: %s", g.Title, progress)
	if status != "" {
		content += fmt.Sprintf(" (status: %s)", status)
	}
	ann := &staff.Annotation{Category: "goal_progress"}
	if err := s.staff.AppendListItem(staffID, staff.FieldNotes, content, ann); err != nil {
		return models.Goal{}, err
	}
	s.reindexStaff(staffID)
	g.ProgressNotes = append(g.ProgressNotes, content)
	return g, nil
}

const adviceTemplate = `Based on the information about %s:

Role: %s
Department: %s
Recent Notes: %d total notes
Active Goals: %d goals
Situation: %s

Management Recommendations:
1. Regular Check-ins: Schedule weekly 1:1s to maintain open communication
2. Goal Alignment: Ensure their goals align with department objectives
3. Development: Identify growth opportunities based on their interests
4. Recognition: Acknowledge achievements and progress regularly
5. Support: Address any concerns or roadblocks proactively

For specific situations, consider the context of recent notes and their current goals.
`

// ManagementAdvice renders the templated guidance block for one profile.
// Every stored goal counts as active; the store persists no goal status.
func (s *Service) ManagementAdvice(_ context.Context, staffID, situation string) (string, error) {
	p, err := s.staff.FindByID(staffID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(situation) == "" {
		situation = "General management guidance"
	}
	return fmt.Sprintf(adviceTemplate,
		p.Name,
		orNotSpecified(p.Role),
		orNotSpecified(p.Department),
		len(p.Notes),
		len(p.Goals),
		situation,
	), nil
}

// SearchDocuments runs a full-text query over the indexed record files.
// A non-empty kind restricts the hits to one record category.
func (s *Service) SearchDocuments(_ context.Context, query, kind string, limit int) ([]index.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", apperr.ErrInvalid)
	}
	if kind != "" && !index.ValidKind(kind) {
		return nil, fmt.Errorf("%w: unknown document kind %q", apperr.ErrInvalid, kind)
	}
	if limit <= 0 {
		limit = 20
	}
	results, err := s.db.Search(query, kind, limit)
	if err != nil {
		return nil, err
	}
	return nonNilSlice(results), nil
}

// reindex refreshes one document in the search index. The index is a
// derived cache, so failures are logged and swallowed.
func (s *Service) reindex(path string) {
	if err := index.IndexFile(s.db, s.store, path); err != nil {
		s.logger.Warn("index update failed", "path", path, "error", err)
	}
}

// reindexStaff reindexes a profile addressed by id rather than path.
func (s *Service) reindexStaff(id string) {
	p, err := s.staff.FindByID(id)
	if err != nil {
		return
	}
	s.reindex(staff.PathFor(p.Name))
}

func (s *Service) dropIndex(path string) {
	if err := s.db.Delete(path); err != nil {
		s.logger.Warn("index delete failed", "path", path, "error", err)
	}
}

// splitGoalID takes apart the "<staffID>-goal-<slot>" grammar used by the
// goal projections.
func splitGoalID(goalID string) (staffID string, slot int, ok bool) {
	i := strings.LastIndex(goalID, "-goal-")
	if i <= 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(goalID[i+len("-goal-"):])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return goalID[:i], n, true
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

func normalizeProfile(p models.Profile) models.Profile {
	p.Skills = nonNilSlice(p.Skills)
	p.Goals = nonNilSlice(p.Goals)
	p.Notes = nonNilSlice(p.Notes)
	p.Achievements = nonNilSlice(p.Achievements)
	p.Concerns = nonNilSlice(p.Concerns)
	return p
}

// nonNilSlice keeps JSON list fields rendering as [] instead of null.
func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
