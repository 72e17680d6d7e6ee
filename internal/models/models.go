// Package models defines the domain types for Mannaz.
package models

import "time"

// Priority is a reminder's urgency level, from a fixed ordered set.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is one of the fixed priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ReminderStatus describes where a reminder stands. Pending and completed
// are persisted via section membership in the shared log; overdue is
// derived at read time and never written back.
type ReminderStatus string

const (
	StatusPending   ReminderStatus = "pending"
	StatusCompleted ReminderStatus = "completed"
	StatusOverdue   ReminderStatus = "overdue"
)

// Profile is a staff member's persisted record. Name drives the on-disk
// filename; ID is immutable once assigned.
type Profile struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Role         string     `json:"role,omitempty"`
	Department   string     `json:"department,omitempty"`
	Manager      string     `json:"manager,omitempty"`
	HireDate     *time.Time `json:"hire_date,omitempty"`
	LastOneOnOne *time.Time `json:"last_one_on_one,omitempty"`
	NextReview   *time.Time `json:"next_review,omitempty"`
	Skills       []string   `json:"skills"`
	Goals        []string   `json:"goals"`
	Notes        []string   `json:"notes"`
	Achievements []string   `json:"achievements"`
	Concerns     []string   `json:"concerns"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Reminder is one entry in the shared reminders log.
type Reminder struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	DueDate     time.Time      `json:"due_date"`
	Priority    Priority       `json:"priority"`
	Status      ReminderStatus `json:"status"`
	StaffID     string         `json:"staff_id,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// Note is a read-time projection of one entry in a profile's Notes list.
// The stored line's trailing annotation is split into Category/Timestamp.
type Note struct {
	ID        string    `json:"id"`
	StaffID   string    `json:"staff_id"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// Goal is a read-time projection of one entry in a profile's Goals list.
// The Markdown store keeps only the title line; the other fields exist for
// the tool surface and are not persisted per goal.
type Goal struct {
	ID            string     `json:"id"`
	StaffID       string     `json:"staff_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	TargetDate    *time.Time `json:"target_date,omitempty"`
	Status        string     `json:"status"`
	ProgressNotes []string   `json:"progress_notes"`
}

// Transcript is a processed call transcript document.
type Transcript struct {
	ID           string    `json:"id"`
	Title        string    `json:"title,omitempty"`
	Content      string    `json:"content"`
	Participants []string  `json:"participants"`
	Processed    bool      `json:"processed"`
	CreatedAt    time.Time `json:"created_at"`
}

// DocumentMetadata is a lightweight representation returned by list
// operations and consumed by the search index sync.
type DocumentMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
