// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Mannaz team-management tools for LLM integration via
// stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/mannaz/internal/teamservice"
)

// Server wraps the MCP server with Mannaz tools.
type Server struct {
	mcp *server.MCPServer
	svc *teamservice.Service
}

// New creates a new MCP server with all Mannaz tools registered.
func New(svc *teamservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Mannaz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("add_staff_member",
		mcp.WithDescription("Add a new staff member to the team."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Staff member's full name")),
		mcp.WithString("email", mcp.Description("Email address")),
		mcp.WithString("role", mcp.Description("Job title/role")),
		mcp.WithString("department", mcp.Description("Department")),
		mcp.WithString("manager", mcp.Description("Manager's name")),
	), s.addStaffMember)

	s.mcp.AddTool(mcp.NewTool("update_staff_member",
		mcp.WithDescription("Update an existing staff member's information. Only provided fields change."),
		mcp.WithString("staff_id", mcp.Required(), mcp.Description("Staff member ID")),
		mcp.WithString("name", mcp.Description("Staff member's full name")),
		mcp.WithString("email", mcp.Description("Email address")),
		mcp.WithString("role", mcp.Description("Job title/role")),
		mcp.WithString("department", mcp.Description("Department")),
		mcp.WithString("manager", mcp.Description("Manager's name")),
	), s.updateStaffMember)

	s.mcp.AddTool(mcp.NewTool("get_staff_member",
		mcp.WithDescription("Get details for a specific staff member."),
		mcp.WithString("staff_id", mcp.Description("Staff member ID")),
		mcp.WithString("name", mcp.Description("Staff member name (alternative to ID)")),
	), s.getStaffMember)

	s.mcp.AddTool(mcp.NewTool("list_all_staff",
		mcp.WithDescription("List all staff members with basic info."),
	), s.listAllStaff)

	s.mcp.AddTool(mcp.NewTool("add_note",
		mcp.WithDescription("Add a note about a staff member."),
		mcp.WithString("staff_id", mcp.Required(), mcp.Description("Staff member ID")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Note content")),
		mcp.WithString("category", mcp.Description("Note category (e.g. performance, personal, goals)")),
		mcp.WithString("source", mcp.Description("Source of the note (e.g. one_on_one, call_transcript)")),
		mcp.WithArray("tags", mcp.Description("Tags for the note"),
			mcp.Items(map[string]any{"type": "string"})),
	), s.addNote)

	s.mcp.AddTool(mcp.NewTool("get_staff_notes",
		mcp.WithDescription("Get all notes for a staff member."),
		mcp.WithString("staff_id", mcp.Required(), mcp.Description("Staff member ID")),
	), s.getStaffNotes)

	s.mcp.AddTool(mcp.NewTool("add_reminder",
		mcp.WithDescription("Add a reminder for staff-related tasks."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Reminder title")),
		mcp.WithString("due_date", mcp.Required(), mcp.Description("Due date (YYYY-MM-DD or YYYY-MM-DD HH:MM)")),
		mcp.WithString("description", mcp.Description("Detailed description")),
		mcp.WithString("priority", mcp.Description("Priority level: low, medium, high or urgent")),
		mcp.WithString("staff_id", mcp.Description("Related staff member ID (optional)")),
		mcp.WithArray("tags", mcp.Description("Tags"),
			mcp.Items(map[string]any{"type": "string"})),
	), s.addReminder)

	s.mcp.AddTool(mcp.NewTool("list_reminders",
		mcp.WithDescription("List reminders, optionally filtered by status or staff member."),
		mcp.WithString("status", mcp.Description("Filter by status: pending, completed or overdue")),
		mcp.WithString("staff_id", mcp.Description("Filter by staff member")),
	), s.listReminders)

	s.mcp.AddTool(mcp.NewTool("complete_reminder",
		mcp.WithDescription("Mark a reminder as completed."),
		mcp.WithString("reminder_id", mcp.Required(), mcp.Description("Reminder ID")),
	), s.completeReminder)

	s.mcp.AddTool(mcp.NewTool("add_goal",
		mcp.WithDescription("Add a goal for a staff member."),
		mcp.WithString("staff_id", mcp.Required(), mcp.Description("Staff member ID")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Goal title")),
		mcp.WithString("description", mcp.Description("Goal description")),
		mcp.WithString("target_date", mcp.Description("Target completion date (YYYY-MM-DD)")),
	), s.addGoal)

	s.mcp.AddTool(mcp.NewTool("update_goal_progress",
		mcp.WithDescription("Update progress on a staff member's goal."),
		mcp.WithString("goal_id", mcp.Required(), mcp.Description("Goal ID")),
		mcp.WithString("progress_note", mcp.Required(), mcp.Description("Progress update")),
		mcp.WithString("status", mcp.Description("Goal status: active, completed, paused or cancelled")),
	), s.updateGoalProgress)

	s.mcp.AddTool(mcp.NewTool("get_staff_goals",
		mcp.WithDescription("Get all goals for a staff member."),
		mcp.WithString("staff_id", mcp.Required(), mcp.Description("Staff member ID")),
	), s.getStaffGoals)

	s.mcp.AddTool(mcp.NewTool("process_call_transcript",
		mcp.WithDescription("Process a call transcript to extract insights and action items. "+
			"Extracted insights are linked to participant profiles automatically."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Transcript content")),
		mcp.WithString("title", mcp.Description("Call/meeting title")),
		mcp.WithArray("participants", mcp.Description("List of participants"),
			mcp.Items(map[string]any{"type": "string"})),
	), s.processCallTranscript)

	s.mcp.AddTool(mcp.NewTool("get_management_advice",
		mcp.WithDescription("Get management advice for a staff member based on their notes and goals."),
		mcp.WithString("staff_id", mcp.Required(), mcp.Description("Staff member ID")),
		mcp.WithString("situation", mcp.Description("Current situation or challenge")),
	), s.getManagementAdvice)

	s.mcp.AddTool(mcp.NewTool("search_documents",
		mcp.WithDescription("Full-text search across staff profiles, reminders and transcripts."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithString("kind", mcp.Description("Restrict to one record kind: profile, transcript, reminders or document")),
	), s.searchDocuments)

	s.mcp.AddTool(mcp.NewTool("get_document_contract",
		mcp.WithDescription("Returns the canonical Mannaz record document contract describing "+
			"how staff profiles and the reminders log are laid out on disk."),
	), s.getDocumentContract)

	// Resource: record document contract.
	s.mcp.AddResource(
		mcp.NewResource("mannaz://document-format", "Record Document Contract",
			mcp.WithResourceDescription("Canonical Markdown layout for staff profiles and the reminders log."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDocumentFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) addStaffMember(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := s.svc.CreateStaff(ctx, teamservice.CreateStaffRequest{
		Name:       name,
		Email:      req.GetString("email", ""),
		Role:       req.GetString("role", ""),
		Department: req.GetString("department", ""),
		Manager:    req.GetString("manager", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Staff member %s added with ID: %s", p.Name, p.ID)), nil
}

func (s *Server) updateStaffMember(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("staff_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var upd teamservice.UpdateStaffRequest
	if v, ok := optString(req, "name"); ok {
		upd.Name = &v
	}
	if v, ok := optString(req, "email"); ok {
		upd.Email = &v
	}
	if v, ok := optString(req, "role"); ok {
		upd.Role = &v
	}
	if v, ok := optString(req, "department"); ok {
		upd.Department = &v
	}
	if v, ok := optString(req, "manager"); ok {
		upd.Manager = &v
	}
	p, err := s.svc.UpdateStaff(ctx, id, upd)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Staff member %s updated successfully", p.Name)), nil
}

func (s *Server) getStaffMember(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var (
		p   any
		err error
	)
	if id, ok := optString(req, "staff_id"); ok {
		p, err = s.svc.GetStaffByID(ctx, id)
	} else if name, ok := optString(req, "name"); ok {
		p, err = s.svc.GetStaffByName(ctx, name)
	} else {
		return mcp.NewToolResultError("provide either staff_id or name"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(p, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listAllStaff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.svc.ListStaff(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("staff_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.AddNote(ctx, teamservice.AddNoteRequest{
		StaffID:  id,
		Content:  content,
		Category: req.GetString("category", ""),
		Source:   req.GetString("source", ""),
	}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Note added successfully"), nil
}

func (s *Server) getStaffNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("staff_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	notes, err := s.svc.StaffNotes(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(notes, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	due, err := req.RequireString("due_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r, err := s.svc.AddReminder(ctx, teamservice.AddReminderRequest{
		Title:       title,
		Description: req.GetString("description", ""),
		DueDate:     due,
		Priority:    req.GetString("priority", ""),
		StaffID:     req.GetString("staff_id", ""),
		Tags:        stringSlice(req, "tags"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder added with ID: %s", r.ID)), nil
}

func (s *Server) listReminders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reminders, err := s.svc.ListReminders(ctx, teamservice.ReminderFilter{
		Status:  req.GetString("status", ""),
		StaffID: req.GetString("staff_id", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(reminders, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) completeReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("reminder_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.svc.CompleteReminder(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Reminder marked as completed"), nil
}

func (s *Server) addGoal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("staff_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	g, err := s.svc.AddGoal(ctx, teamservice.AddGoalRequest{
		StaffID:     id,
		Title:       title,
		Description: req.GetString("description", ""),
		TargetDate:  req.GetString("target_date", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Goal added with ID: %s", g.ID)), nil
}

func (s *Server) updateGoalProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goalID, err := req.RequireString("goal_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := req.RequireString("progress_note")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.svc.UpdateGoalProgress(ctx, goalID, note, req.GetString("status", "")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Goal progress updated"), nil
}

func (s *Server) getStaffGoals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("staff_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	goals, err := s.svc.StaffGoals(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(goals, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) processCallTranscript(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.ProcessTranscript(ctx, teamservice.ProcessTranscriptRequest{
		Title:        req.GetString("title", ""),
		Content:      content,
		Participants: stringSlice(req, "participants"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getManagementAdvice(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("staff_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	advice, err := s.svc.ManagementAdvice(ctx, id, req.GetString("situation", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(advice), nil
}

func (s *Server) searchDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hits, err := s.svc.SearchDocuments(ctx, query, req.GetString("kind", ""), 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(hits, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getDocumentContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DocumentFormatContract), nil
}

func (s *Server) readDocumentFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "mannaz://document-format",
			MIMEType: "text/markdown",
			Text:     DocumentFormatContract,
		},
	}, nil
}

// optString reports whether the argument was provided at all, so empty
// strings stay distinguishable from absent ones.
func optString(req mcp.CallToolRequest, key string) (string, bool) {
	v, ok := req.GetArguments()[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func stringSlice(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
