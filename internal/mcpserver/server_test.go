package mcpserver

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/mannaz/internal/teamservice"
	"github.com/starford/mannaz/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	_, store := testutil.TestDataDir(t)
	db := testutil.TestDB(t)

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	manager := teamservice.Manager{Name: "James Armstrong", Role: "Engineering Manager", Department: "Platform"}
	svc := teamservice.NewService(store, db, manager, logger)
	return New(svc)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we go
	// through the handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "add_staff_member":
		result, err = srv.addStaffMember(ctx, req)
	case "update_staff_member":
		result, err = srv.updateStaffMember(ctx, req)
	case "get_staff_member":
		result, err = srv.getStaffMember(ctx, req)
	case "list_all_staff":
		result, err = srv.listAllStaff(ctx, req)
	case "add_note":
		result, err = srv.addNote(ctx, req)
	case "get_staff_notes":
		result, err = srv.getStaffNotes(ctx, req)
	case "add_reminder":
		result, err = srv.addReminder(ctx, req)
	case "list_reminders":
		result, err = srv.listReminders(ctx, req)
	case "complete_reminder":
		result, err = srv.completeReminder(ctx, req)
	case "add_goal":
		result, err = srv.addGoal(ctx, req)
	case "update_goal_progress":
		result, err = srv.updateGoalProgress(ctx, req)
	case "get_staff_goals":
		result, err = srv.getStaffGoals(ctx, req)
	case "process_call_transcript":
		result, err = srv.processCallTranscript(ctx, req)
	case "get_management_advice":
		result, err = srv.getManagementAdvice(ctx, req)
	case "search_documents":
		result, err = srv.searchDocuments(ctx, req)
	case "get_document_contract":
		result, err = srv.getDocumentContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// addStaff creates a profile through the tool surface and returns its id.
func addStaff(t *testing.T, srv *Server, name string, extra map[string]interface{}) string {
	t.Helper()
	args := map[string]interface{}{"name": name}
	for k, v := range extra {
		args[k] = v
	}
	text := resultText(callTool(t, srv, "add_staff_member", args))
	prefix := "Staff member " + name + " added with ID: "
	if !strings.HasPrefix(text, prefix) {
		t.Fatalf("add_staff_member result = %q", text)
	}
	return strings.TrimPrefix(text, prefix)
}

func TestAddAndGetStaffMember(t *testing.T) {
	srv := testServer(t)
	id := addStaff(t, srv, "Jane Doe", map[string]interface{}{"role": "Senior Engineer"})

	r := callTool(t, srv, "get_staff_member", map[string]interface{}{"staff_id": id})
	if text := resultText(r); !strings.Contains(text, `"name": "Jane Doe"`) {
		t.Errorf("get by id = %q", text)
	}

	r = callTool(t, srv, "get_staff_member", map[string]interface{}{"name": "jane doe"})
	if text := resultText(r); !strings.Contains(text, id) {
		t.Errorf("get by name = %q", text)
	}

	r = callTool(t, srv, "get_staff_member", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error when neither staff_id nor name is given")
	}
}

func TestGetStaffMember_Missing(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_staff_member", map[string]interface{}{"staff_id": "nope"})
	if !r.IsError {
		t.Error("expected error for unknown staff id")
	}
}

func TestListAllStaff(t *testing.T) {
	srv := testServer(t)
	addStaff(t, srv, "Jane Doe", nil)
	addStaff(t, srv, "Alex Kim", nil)

	text := resultText(callTool(t, srv, "list_all_staff", map[string]interface{}{}))
	if !strings.Contains(text, "Jane Doe") || !strings.Contains(text, "Alex Kim") {
		t.Errorf("list_all_staff = %q", text)
	}
}

func TestUpdateStaffMember(t *testing.T) {
	srv := testServer(t)
	id := addStaff(t, srv, "Jane Doe", nil)

	r := callTool(t, srv, "update_staff_member", map[string]interface{}{
		"staff_id": id,
		"role":     "Staff Engineer",
	})
	if text := resultText(r); text != "Staff member Jane Doe updated successfully" {
		t.Errorf("update result = %q", text)
	}

	text := resultText(callTool(t, srv, "get_staff_member", map[string]interface{}{"staff_id": id}))
	if !strings.Contains(text, "Staff Engineer") {
		t.Errorf("updated profile = %q", text)
	}

	r = callTool(t, srv, "update_staff_member", map[string]interface{}{
		"staff_id": "nope",
		"role":     "Staff Engineer",
	})
	if !r.IsError {
		t.Error("expected error for unknown staff id")
	}
}

func TestAddNoteAndGetNotes(t *testing.T) {
	srv := testServer(t)
	id := addStaff(t, srv, "Jane Doe", nil)

	r := callTool(t, srv, "add_note", map[string]interface{}{
		"staff_id": id,
		"content":  "Shipped the migration ahead of schedule",
		"category": "performance",
	})
	if text := resultText(r); text != "Note added successfully" {
		t.Errorf("add_note result = %q", text)
	}

	text := resultText(callTool(t, srv, "get_staff_notes", map[string]interface{}{"staff_id": id}))
	if !strings.Contains(text, "Shipped the migration ahead of schedule") {
		t.Errorf("notes = %q", text)
	}
	if !strings.Contains(text, `"category": "performance"`) {
		t.Errorf("notes lost category: %q", text)
	}

	r = callTool(t, srv, "add_note", map[string]interface{}{"staff_id": id})
	if !r.IsError {
		t.Error("expected error when content is missing")
	}
}

func TestReminderTools(t *testing.T) {
	srv := testServer(t)

	text := resultText(callTool(t, srv, "add_reminder", map[string]interface{}{
		"title":    "Prepare quarterly review",
		"due_date": "2099-01-02",
		"priority": "high",
		"tags":     []any{"review"},
	}))
	if !strings.HasPrefix(text, "Reminder added with ID: ") {
		t.Fatalf("add_reminder result = %q", text)
	}
	id := strings.TrimPrefix(text, "Reminder added with ID: ")

	text = resultText(callTool(t, srv, "list_reminders", map[string]interface{}{}))
	if !strings.Contains(text, "Prepare quarterly review") {
		t.Errorf("list_reminders = %q", text)
	}

	r := callTool(t, srv, "complete_reminder", map[string]interface{}{"reminder_id": id})
	if text := resultText(r); text != "Reminder marked as completed" {
		t.Errorf("complete result = %q", text)
	}

	text = resultText(callTool(t, srv, "list_reminders", map[string]interface{}{"status": "completed"}))
	if !strings.Contains(text, id) {
		t.Errorf("completed list = %q", text)
	}

	r = callTool(t, srv, "complete_reminder", map[string]interface{}{"reminder_id": "nope"})
	if !r.IsError {
		t.Error("expected error for unknown reminder")
	}
}

func TestAddReminder_BadDate(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "add_reminder", map[string]interface{}{
		"title":    "Broken",
		"due_date": "whenever",
	})
	if !r.IsError {
		t.Error("expected error for unparseable due date")
	}
}

func TestGoalTools(t *testing.T) {
	srv := testServer(t)
	id := addStaff(t, srv, "Jane Doe", nil)

	text := resultText(callTool(t, srv, "add_goal", map[string]interface{}{
		"staff_id": id,
		"title":    "Ship the onboarding revamp",
	}))
	if text != "Goal added with ID: "+id+"-goal-0" {
		t.Fatalf("add_goal result = %q", text)
	}

	r := callTool(t, srv, "update_goal_progress", map[string]interface{}{
		"goal_id":       id + "-goal-0",
		"progress_note": "Design review done",
		"status":        "active",
	})
	if text := resultText(r); text != "Goal progress updated" {
		t.Errorf("progress result = %q", text)
	}

	text = resultText(callTool(t, srv, "get_staff_goals", map[string]interface{}{"staff_id": id}))
	if !strings.Contains(text, "Ship the onboarding revamp") {
		t.Errorf("goals = %q", text)
	}

	text = resultText(callTool(t, srv, "get_staff_notes", map[string]interface{}{"staff_id": id}))
	if !strings.Contains(text, "Progress on") {
		t.Errorf("progress note not filed: %q", text)
	}

	r = callTool(t, srv, "update_goal_progress", map[string]interface{}{
		"goal_id":       id + "-goal-9",
		"progress_note": "x",
	})
	if !r.IsError {
		t.Error("expected error for out-of-range goal slot")
	}
}

func TestProcessCallTranscript(t *testing.T) {
	srv := testServer(t)
	addStaff(t, srv, "Sarah Chen", nil)

	text := resultText(callTool(t, srv, "process_call_transcript", map[string]interface{}{
		"title":        "Planning Sync",
		"content":      "Sarah Chen: I will take the action to update the roadmap.",
		"participants": []any{"Sarah Chen"},
	}))
	if !strings.Contains(text, `"staff_updates": "Automatically linked insights to participant profiles"`) {
		t.Errorf("transcript result = %q", text)
	}
	if !strings.Contains(text, `"path": "transcripts/`) {
		t.Errorf("transcript result missing path: %q", text)
	}

	r := callTool(t, srv, "process_call_transcript", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error when content is missing")
	}
}

func TestGetManagementAdvice(t *testing.T) {
	srv := testServer(t)
	id := addStaff(t, srv, "Jane Doe", map[string]interface{}{"role": "Senior Engineer"})

	text := resultText(callTool(t, srv, "get_management_advice", map[string]interface{}{
		"staff_id":  id,
		"situation": "Team conflict",
	}))
	if !strings.Contains(text, "Management Recommendations") {
		t.Errorf("advice = %q", text)
	}
	if !strings.Contains(text, "Situation: Team conflict") {
		t.Errorf("advice lost the situation: %q", text)
	}

	r := callTool(t, srv, "get_management_advice", map[string]interface{}{"staff_id": "nope"})
	if !r.IsError {
		t.Error("expected error for unknown staff id")
	}
}

func TestSearchDocuments(t *testing.T) {
	srv := testServer(t)
	id := addStaff(t, srv, "Jane Doe", nil)
	callTool(t, srv, "add_note", map[string]interface{}{
		"staff_id": id,
		"content":  "Leads the velocityproject rollout",
	})

	text := resultText(callTool(t, srv, "search_documents", map[string]interface{}{
		"query": "velocityproject",
	}))
	if !strings.Contains(text, "staff/jane-doe.md") {
		t.Errorf("search = %q", text)
	}

	text = resultText(callTool(t, srv, "search_documents", map[string]interface{}{
		"query": "velocityproject",
		"kind":  "transcript",
	}))
	if strings.Contains(text, "staff/jane-doe.md") {
		t.Errorf("kind filter leaked profile hit: %q", text)
	}

	r := callTool(t, srv, "search_documents", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error when query is missing")
	}
}

func TestGetDocumentContract(t *testing.T) {
	srv := testServer(t)
	text := resultText(callTool(t, srv, "get_document_contract", map[string]interface{}{}))
	if !strings.Contains(text, "# Mannaz Record Document Contract") {
		t.Errorf("contract = %q", text)
	}
	if !strings.Contains(text, "## Pending Tasks") {
		t.Errorf("contract missing reminders grammar: %q", text)
	}
}
