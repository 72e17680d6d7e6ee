package teamservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/starford/mannaz/internal/analysis"
	"github.com/starford/mannaz/internal/apperr"
	"github.com/starford/mannaz/internal/models"
	"github.com/starford/mannaz/internal/staff"
)

// ProcessTranscriptRequest carries a raw call transcript for analysis.
type ProcessTranscriptRequest struct {
	Title        string   `json:"title,omitempty"`
	Content      string   `json:"content"`
	Participants []string `json:"participants,omitempty"`
}

// TranscriptResult is the processing outcome: the stored document, the
// extracted analysis and a summary of the profile updates made.
type TranscriptResult struct {
	TranscriptID string          `json:"transcript_id"`
	Path         string          `json:"path"`
	Analysis     analysis.Result `json:"analysis"`
	StaffUpdates string          `json:"staff_updates"`
}

// ProcessTranscript analyzes a transcript, writes it as a record
// document and links the extracted insights to participant profiles. A
// participant without a profile is skipped; the operator instead gets a
// leadership coaching note on their own profile, created on first use.
func (s *Service) ProcessTranscript(_ context.Context, req ProcessTranscriptRequest) (TranscriptResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return TranscriptResult{}, fmt.Errorf("%w: content is required", apperr.ErrInvalid)
	}
	t := models.Transcript{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Content:      req.Content,
		Participants: nonNilSlice(req.Participants),
		Processed:    true,
		CreatedAt:    time.Now(),
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Meeting"
	}
	res := analysis.Analyze(req.Content, t.Participants, title)
	path, err := s.transcripts.Write(t, res)
	if err != nil {
		return TranscriptResult{}, err
	}
	s.reindex(path)
	s.linkInsights(t, res)
	s.coachManager(t, res)
	return TranscriptResult{
		TranscriptID: t.ID,
		Path:         path,
		Analysis:     res,
		StaffUpdates: "Automatically linked insights to participant profiles",
	}, nil
}

// linkInsights files a meeting summary note on every participant that has
// a profile. The operator is excluded here; their feedback goes through
// coachManager instead.
func (s *Service) linkInsights(t models.Transcript, res analysis.Result) {
	category := "team_meeting"
	if len(t.Participants) == 2 {
		category = "one_on_one"
	}
	for _, name := range t.Participants {
		if s.isManager(name) {
			continue
		}
		p, err := s.staff.FindByName(name)
		if err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				s.logger.Warn("participant lookup failed", "name", name, "error", err)
			}
			continue
		}
		ann := &staff.Annotation{Category: category, Source: "call_transcript"}
		if err := s.staff.AppendListItem(p.ID, staff.FieldNotes, res.ParticipantNote(name), ann); err != nil {
			s.logger.Warn("could not file meeting note", "staff_id", p.ID, "error", err)
			continue
		}
		s.reindex(staff.PathFor(p.Name))
	}
}

// coachManager files the leadership coaching summary on the operator's
// profile.
func (s *Service) coachManager(t models.Transcript, res analysis.Result) {
	if strings.TrimSpace(s.manager.Name) == "" {
		return
	}
	p, err := s.managerProfile()
	if err != nil {
		s.logger.Warn("could not resolve manager profile", "error", err)
		return
	}
	others := make([]string, 0, len(t.Participants))
	for _, name := range t.Participants {
		if !s.isManager(name) {
			others = append(others, name)
		}
	}
	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = "Call"
	}
	meetingContext := fmt.Sprintf("Meeting: %s with %s", title, strings.Join(others, ", "))
	ann := &staff.Annotation{Category: "personal_development", Source: "leadership_coaching"}
	if err := s.staff.AppendListItem(p.ID, staff.FieldNotes, res.CoachingNote(meetingContext), ann); err != nil {
		s.logger.Warn("could not file coaching note", "staff_id", p.ID, "error", err)
		return
	}
	s.reindex(staff.PathFor(p.Name))
}

// managerProfile finds the operator's profile, creating it from the
// configured identity when missing.
func (s *Service) managerProfile() (models.Profile, error) {
	p, err := s.staff.FindByName(s.manager.Name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return models.Profile{}, err
	}
	p = models.Profile{
		ID:         uuid.NewString(),
		Name:       s.manager.Name,
		Role:       s.manager.Role,
		Department: s.manager.Department,
	}
	if err := s.staff.Save(&p); err != nil {
		return models.Profile{}, err
	}
	s.logger.Info("created manager profile", "staff_id", p.ID, "name", p.Name)
	s.reindex(staff.PathFor(p.Name))
	return p, nil
}

// isManager reports whether a participant name refers to the operator:
// the configured full name or its first word, case-insensitive.
func (s *Service) isManager(name string) bool {
	full := strings.ToLower(strings.TrimSpace(s.manager.Name))
	if full == "" {
		return false
	}
	n := strings.ToLower(strings.TrimSpace(name))
	if n == full {
		return true
	}
	first, _, ok := strings.Cut(full, " ")
	return ok && n == first
}
