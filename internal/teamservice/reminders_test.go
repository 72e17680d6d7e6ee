package teamservice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/starford/mannaz/internal/apperr"
	"github.com/starford/mannaz/internal/models"
	"github.com/starford/mannaz/internal/reminders"
)

func TestAddReminder_Defaults(t *testing.T) {
	s := newService(t)
	r, err := s.AddReminder(context.Background(), AddReminderRequest{
		Title:   "Prepare bonus review",
		DueDate: "2030-01-02",
	})
	if err != nil {
		t.Fatalf("AddReminder: %v", err)
	}
	if r.ID == "" {
		t.Fatal("no id assigned")
	}
	if r.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want medium", r.Priority)
	}
	if r.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", r.Status)
	}

	raw, err := s.store.Read(reminders.Path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "**Prepare bonus review** (Due: 2030-01-02)") {
		t.Fatalf("log missing entry:\n%s", raw)
	}
}

func TestAddReminder_Validation(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  AddReminderRequest
	}{
		{"empty title", AddReminderRequest{DueDate: "2030-01-02"}},
		{"bad date", AddReminderRequest{Title: "x", DueDate: "soon"}},
		{"bad priority", AddReminderRequest{Title: "x", DueDate: "2030-01-02", Priority: "asap"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.AddReminder(ctx, tc.req); !errors.Is(err, apperr.ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestAddReminder_LinksStaff(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	p := mustCreate(t, s, "Ona Wilde", "", "")

	r, err := s.AddReminder(ctx, AddReminderRequest{
		Title:   "Schedule 1:1",
		DueDate: "2030-06-01",
		StaffID: p.ID,
	})
	if err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	raw, err := s.store.Read(reminders.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "Related to: Ona Wilde") {
		t.Fatalf("log missing staff link:\n%s", raw)
	}

	linked, err := s.ListReminders(ctx, ReminderFilter{StaffID: p.ID})
	if err != nil {
		t.Fatalf("ListReminders: %v", err)
	}
	if len(linked) != 1 || linked[0].ID != r.ID {
		t.Fatalf("unexpected filter result: %+v", linked)
	}
}

func TestListReminders_OverdueDerivation(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	past, err := s.AddReminder(ctx, AddReminderRequest{Title: "Expense report", DueDate: "2020-01-01"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddReminder(ctx, AddReminderRequest{Title: "Annual review", DueDate: "2099-01-01"}); err != nil {
		t.Fatal(err)
	}

	all, err := s.ListReminders(ctx, ReminderFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("len(all) = %d, want 2", len(all))
	}

	overdue, err := s.ListReminders(ctx, ReminderFilter{Status: "overdue"})
	if err != nil {
		t.Fatal(err)
	}
	if len(overdue) != 1 || overdue[0].ID != past.ID {
		t.Fatalf("unexpected overdue list: %+v", overdue)
	}
	if overdue[0].Status != models.StatusOverdue {
		t.Errorf("status = %q, want overdue", overdue[0].Status)
	}

	pending, err := s.ListReminders(ctx, ReminderFilter{Status: "pending"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].Title != "Annual review" {
		t.Fatalf("unexpected pending list: %+v", pending)
	}
}

func TestCompleteReminder(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	r, err := s.AddReminder(ctx, AddReminderRequest{Title: "Send agenda", DueDate: "2030-03-03"})
	if err != nil {
		t.Fatal(err)
	}

	done, err := s.CompleteReminder(ctx, r.ID)
	if err != nil {
		t.Fatalf("CompleteReminder: %v", err)
	}
	if done.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", done.Status)
	}
	if done.CompletedAt == nil {
		t.Error("CompletedAt not stamped")
	}

	completed, err := s.ListReminders(ctx, ReminderFilter{Status: "completed"})
	if err != nil {
		t.Fatal(err)
	}
	if len(completed) != 1 || completed[0].ID != r.ID {
		t.Fatalf("unexpected completed list: %+v", completed)
	}

	// Completing again is a no-op, not an error.
	again, err := s.CompleteReminder(ctx, r.ID)
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if again.Status != models.StatusCompleted {
		t.Errorf("second complete status = %q", again.Status)
	}
}

func TestCompleteReminder_NotFound(t *testing.T) {
	s := newService(t)
	_, err := s.CompleteReminder(context.Background(), "missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
