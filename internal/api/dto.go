package api

import (
	"github.com/starford/mannaz/internal/index"
	"github.com/starford/mannaz/internal/models"
	"github.com/starford/mannaz/internal/teamservice"
)

// Request bodies are aliased from the domain layer so handlers and docs
// share one shape.
type (
	CreateStaffRequest       = teamservice.CreateStaffRequest
	UpdateStaffRequest       = teamservice.UpdateStaffRequest
	AddNoteRequest           = teamservice.AddNoteRequest
	AddGoalRequest           = teamservice.AddGoalRequest
	AddReminderRequest       = teamservice.AddReminderRequest
	ProcessTranscriptRequest = teamservice.ProcessTranscriptRequest
)

// Response payload aliases.
type (
	StaffDetail      = models.Profile
	GoalDetail       = models.Goal
	ReminderDetail   = models.Reminder
	TranscriptResult = teamservice.TranscriptResult
)

// StaffListResponse wraps the staff listing.
type StaffListResponse struct {
	Staff []teamservice.StaffSummary `json:"staff" validate:"required"`
}

// NoteListResponse wraps a profile's note projections.
type NoteListResponse struct {
	Notes []models.Note `json:"notes" validate:"required"`
}

// GoalListResponse wraps a profile's goal projections.
type GoalListResponse struct {
	Goals []models.Goal `json:"goals" validate:"required"`
}

// ReminderListResponse wraps reminder listings.
type ReminderListResponse struct {
	Reminders []models.Reminder `json:"reminders" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results" validate:"required"`
}
