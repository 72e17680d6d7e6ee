package teamservice

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/starford/mannaz/internal/apperr"
	"github.com/starford/mannaz/internal/index"
	"github.com/starford/mannaz/internal/models"
	"github.com/starford/mannaz/internal/staff"
	"github.com/starford/mannaz/internal/testutil"
)

func newService(t *testing.T) *Service {
	t.Helper()
	_, store := testutil.TestDataDir(t)
	db := testutil.TestDB(t)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	manager := Manager{Name: "James Armstrong", Role: "Engineering Manager", Department: "Platform"}
	return NewService(store, db, manager, logger)
}

func mustCreate(t *testing.T, s *Service, name, role, department string) models.Profile {
	t.Helper()
	p, err := s.CreateStaff(context.Background(), CreateStaffRequest{Name: name, Role: role, Department: department})
	if err != nil {
		t.Fatalf("CreateStaff(%s): %v", name, err)
	}
	return p
}

func TestCreateStaff_RequiresName(t *testing.T) {
	s := newService(t)
	_, err := s.CreateStaff(context.Background(), CreateStaffRequest{Name: "   "})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestStaffLifecycle(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	created := mustCreate(t, s, "Jordan Lee", "Product Engineer", "Platform")
	if created.ID == "" {
		t.Fatal("created profile has no id")
	}

	byID, err := s.GetStaffByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetStaffByID: %v", err)
	}
	if byID.Name != "Jordan Lee" || byID.Role != "Product Engineer" {
		t.Fatalf("unexpected profile: %+v", byID)
	}
	if byID.Notes == nil || byID.Goals == nil {
		t.Fatal("list fields must be non-nil")
	}

	byName, err := s.GetStaffByName(ctx, "jordan lee")
	if err != nil {
		t.Fatalf("GetStaffByName: %v", err)
	}
	if byName.ID != created.ID {
		t.Fatalf("byName.ID = %s, want %s", byName.ID, created.ID)
	}

	list, err := s.ListStaff(ctx)
	if err != nil {
		t.Fatalf("ListStaff: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", list)
	}

	role := "Staff Engineer"
	updated, err := s.UpdateStaff(ctx, created.ID, UpdateStaffRequest{Role: &role})
	if err != nil {
		t.Fatalf("UpdateStaff: %v", err)
	}
	if updated.Role != "Staff Engineer" || updated.Name != "Jordan Lee" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if err := s.DeleteStaff(ctx, created.ID); err != nil {
		t.Fatalf("DeleteStaff: %v", err)
	}
	if _, err := s.GetStaffByID(ctx, created.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("after delete err = %v, want ErrNotFound", err)
	}
}

func TestUpdateStaff_RenameMovesFile(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	p := mustCreate(t, s, "Dana Low", "", "")

	name := "Dana High"
	if _, err := s.UpdateStaff(ctx, p.ID, UpdateStaffRequest{Name: &name}); err != nil {
		t.Fatalf("UpdateStaff: %v", err)
	}
	if _, err := s.GetStaffByName(ctx, "Dana High"); err != nil {
		t.Fatalf("renamed profile not found: %v", err)
	}
	if _, err := s.store.Read(staff.PathFor("Dana Low")); err == nil {
		t.Fatal("old profile file still present after rename")
	}
}

func TestUpdateStaff_RenameConflict(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	mustCreate(t, s, "Sam One", "", "")
	other := mustCreate(t, s, "Sam Two", "", "")

	name := "Sam One"
	_, err := s.UpdateStaff(ctx, other.ID, UpdateStaffRequest{Name: &name})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestUpdateStaff_EmptyName(t *testing.T) {
	s := newService(t)
	p := mustCreate(t, s, "Ira Vale", "", "")
	name := "  "
	_, err := s.UpdateStaff(context.Background(), p.ID, UpdateStaffRequest{Name: &name})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestAddNote_AndProjection(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	p := mustCreate(t, s, "Noa Reid", "", "")

	err := s.AddNote(ctx, AddNoteRequest{StaffID: p.ID, Content: "Did great work on the migration", Category: "praise", Source: "peer"})
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}

	notes, err := s.StaffNotes(ctx, p.ID)
	if err != nil {
		t.Fatalf("StaffNotes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("len(notes) = %d, want 1", len(notes))
	}
	n := notes[0]
	if n.Content != "Did great work on the migration" {
		t.Errorf("content = %q", n.Content)
	}
	if n.Category != "praise" {
		t.Errorf("category = %q, want praise", n.Category)
	}
	if n.ID != p.ID+"-note-0" {
		t.Errorf("id = %q", n.ID)
	}
}

func TestAddNote_MissingStaff(t *testing.T) {
	s := newService(t)
	err := s.AddNote(context.Background(), AddNoteRequest{StaffID: "nope", Content: "x"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGoals_AddProgressAndList(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	p := mustCreate(t, s, "Ravi Kular", "", "")

	first, err := s.AddGoal(ctx, AddGoalRequest{StaffID: p.ID, Title: "Ship the Q3 roadmap"})
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	if first.ID != p.ID+"-goal-0" {
		t.Fatalf("goal id = %q", first.ID)
	}
	if first.Status != "in_progress" {
		t.Fatalf("goal status = %q", first.Status)
	}

	second, err := s.AddGoal(ctx, AddGoalRequest{StaffID: p.ID, Title: "Mentor two juniors"})
	if err != nil {
		t.Fatalf("AddGoal second: %v", err)
	}
	if second.ID != p.ID+"-goal-1" {
		t.Fatalf("second goal id = %q", second.ID)
	}

	goals, err := s.StaffGoals(ctx, p.ID)
	if err != nil {
		t.Fatalf("StaffGoals: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("len(goals) = %d, want 2", len(goals))
	}

	g, err := s.UpdateGoalProgress(ctx, first.ID, "Halfway through the milestones", "active")
	if err != nil {
		t.Fatalf("UpdateGoalProgress: %v", err)
	}
	if len(g.ProgressNotes) != 1 {
		t.Fatalf("progress notes = %v", g.ProgressNotes)
	}

	notes, err := s.StaffNotes(ctx, p.ID)
	if err != nil {
		t.Fatalf("StaffNotes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("len(notes) = %d, want 1", len(notes))
	}
	if notes[0].Category != "goal_progress" {
		t.Errorf("category = %q", notes[0].Category)
	}
	want := `Progress on "Ship the Q3 roadmap": Halfway through the milestones (status: active)`
	if notes[0].Content != want {
		t.Errorf("content = %q, want %q", notes[0].Content, want)
	}
}

func TestUpdateGoalProgress_BadIDs(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	p := mustCreate(t, s, "Lin Soto", "", "")
	if _, err := s.AddGoal(ctx, AddGoalRequest{StaffID: p.ID, Title: "Learn Go"}); err != nil {
		t.Fatal(err)
	}

	if _, err := s.UpdateGoalProgress(ctx, "nonsense", "note", ""); !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("malformed id err = %v, want ErrInvalid", err)
	}
	if _, err := s.UpdateGoalProgress(ctx, p.ID+"-goal-9", "note", ""); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("out of range err = %v, want ErrNotFound", err)
	}
}

func TestAddGoal_BadTargetDate(t *testing.T) {
	s := newService(t)
	p := mustCreate(t, s, "Mo Adler", "", "")
	_, err := s.AddGoal(context.Background(), AddGoalRequest{StaffID: p.ID, Title: "X", TargetDate: "next tuesday"})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestManagementAdvice(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	p := mustCreate(t, s, "Tess Boyd", "Product Engineer", "Growth")
	if err := s.AddNote(ctx, AddNoteRequest{StaffID: p.ID, Content: "Strong sprint"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddGoal(ctx, AddGoalRequest{StaffID: p.ID, Title: "Own onboarding flow"}); err != nil {
		t.Fatal(err)
	}

	advice, err := s.ManagementAdvice(ctx, p.ID, "")
	if err != nil {
		t.Fatalf("ManagementAdvice: %v", err)
	}
	for _, want := range []string{
		"Based on the information about Tess Boyd:",
		"Role: Product Engineer",
		"Department: Growth",
		"Recent Notes: 1 total notes",
		"Active Goals: 1 goals",
		"Situation: General management guidance",
		"1. Regular Check-ins:",
	} {
		if !strings.Contains(advice, want) {
			t.Errorf("advice missing %q", want)
		}
	}

	advice, err = s.ManagementAdvice(ctx, p.ID, "Preparing a promotion case")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(advice, "Situation: Preparing a promotion case") {
		t.Error("advice does not echo the situation")
	}
}

func TestManagementAdvice_NotFound(t *testing.T) {
	s := newService(t)
	_, err := s.ManagementAdvice(context.Background(), "missing", "")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSearchDocuments(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	p := mustCreate(t, s, "Uma Tran", "", "")
	if err := s.AddNote(ctx, AddNoteRequest{StaffID: p.ID, Content: "Discussed the velocityproject metrics"}); err != nil {
		t.Fatal(err)
	}

	results, err := s.SearchDocuments(ctx, "velocityproject", "", 0)
	if err != nil {
		t.Fatalf("SearchDocuments: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no results")
	}
	if results[0].Path != staff.PathFor("Uma Tran") {
		t.Fatalf("path = %q", results[0].Path)
	}

	// The kind filter keeps profile hits and drops everything else.
	results, err = s.SearchDocuments(ctx, "velocityproject", index.KindProfile, 0)
	if err != nil {
		t.Fatalf("SearchDocuments(profile): %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no profile-scoped results")
	}
	results, err = s.SearchDocuments(ctx, "velocityproject", index.KindTranscript, 0)
	if err != nil {
		t.Fatalf("SearchDocuments(transcript): %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("transcript-scoped results = %+v, want none", results)
	}
}

func TestSearchDocuments_EmptyQuery(t *testing.T) {
	s := newService(t)
	_, err := s.SearchDocuments(context.Background(), "  ", "", 10)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestSearchDocuments_UnknownKind(t *testing.T) {
	s := newService(t)
	_, err := s.SearchDocuments(context.Background(), "anything", "sticky-note", 10)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}
