package teamservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/starford/mannaz/internal/apperr"
	"github.com/starford/mannaz/internal/dates"
	"github.com/starford/mannaz/internal/models"
	"github.com/starford/mannaz/internal/reminders"
)

// AddReminderRequest carries a new reminder. DueDate uses the store's
// YYYY-MM-DD day format. Tags ride along in responses but the log does
// not persist them.
type AddReminderRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueDate     string   `json:"due_date"`
	Priority    string   `json:"priority,omitempty"`
	StaffID     string   `json:"staff_id,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ReminderFilter narrows ListReminders output. Zero value lists
// everything.
type ReminderFilter struct {
	Status  string
	StaffID string
}

// AddReminder validates and appends a pending entry to the shared log.
// A staff link that resolves to nobody is kept empty, not rejected.
func (s *Service) AddReminder(_ context.Context, req AddReminderRequest) (models.Reminder, error) {
	if strings.TrimSpace(req.Title) == "" {
		return models.Reminder{}, fmt.Errorf("%w: title is required", apperr.ErrInvalid)
	}
	due, err := dates.Parse(req.DueDate)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("%w: due_date: %v", apperr.ErrInvalid, err)
	}
	priority := models.PriorityMedium
	if req.Priority != "" {
		priority = models.Priority(req.Priority)
		if !priority.Valid() {
			return models.Reminder{}, fmt.Errorf("%w: priority %q", apperr.ErrInvalid, req.Priority)
		}
	}
	r := models.Reminder{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     due,
		Priority:    priority,
		Status:      models.StatusPending,
		StaffID:     req.StaffID,
		Tags:        nonNilSlice(req.Tags),
		CreatedAt:   time.Now(),
	}
	if _, err := s.reminders.AppendPending(r); err != nil {
		return models.Reminder{}, err
	}
	s.reindex(reminders.Path)
	return r, nil
}

// ListReminders parses the log and applies the filter. Overdue status is
// derived from the due date before filtering, so asking for overdue
// entries works even though the log only has pending and completed
// sections.
func (s *Service) ListReminders(_ context.Context, f ReminderFilter) ([]models.Reminder, error) {
	all, err := s.reminders.ParseAll()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]models.Reminder, 0, len(all))
	for _, r := range all {
		if r.Status == models.StatusPending && r.DueDate.Before(now) {
			r.Status = models.StatusOverdue
		}
		if f.Status != "" && string(r.Status) != f.Status {
			continue
		}
		if f.StaffID != "" && r.StaffID != f.StaffID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// CompleteReminder moves the entry's block into the completed section and
// returns it stamped. Completing an already completed entry is a no-op.
func (s *Service) CompleteReminder(_ context.Context, id string) (models.Reminder, error) {
	all, err := s.reminders.ParseAll()
	if err != nil {
		return models.Reminder{}, err
	}
	var entry *models.Reminder
	for i := range all {
		if all[i].ID == id {
			entry = &all[i]
			break
		}
	}
	if entry == nil {
		return models.Reminder{}, fmt.Errorf("%w: reminder %s", apperr.ErrNotFound, id)
	}
	if entry.Status == models.StatusCompleted {
		return *entry, nil
	}
	out, err := s.reminders.Complete(*entry)
	if err != nil {
		return models.Reminder{}, err
	}
	if !out.Moved {
		return models.Reminder{}, fmt.Errorf("%w: reminder %s", apperr.ErrNotFound, id)
	}
	now := time.Now()
	entry.Status = models.StatusCompleted
	entry.CompletedAt = &now
	s.reindex(reminders.Path)
	return *entry, nil
}
