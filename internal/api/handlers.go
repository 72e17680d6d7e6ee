package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/starford/mannaz/internal/teamservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *teamservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *teamservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListStaff handles GET /api/staff.
//
//	@Summary		List staff profiles
//	@Tags			staff
//	@Produce		json
//	@Success		200	{object}	StaffListResponse
//	@Security		BearerAuth
//	@Router			/staff [get]
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListStaff(r.Context())
	if err != nil {
		writeServiceError(w, err, "list staff")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"staff": items})
}

// CreateStaff handles POST /api/staff.
//
//	@Summary		Create a staff profile
//	@Tags			staff
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateStaffRequest	true	"Profile fields"
//	@Success		201		{object}	StaffDetail
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/staff [post]
func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req teamservice.CreateStaffRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := h.svc.CreateStaff(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "create staff")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// GetStaff handles GET /api/staff/{id}.
//
//	@Summary		Get a staff profile by id
//	@Tags			staff
//	@Produce		json
//	@Param			id	path		string	true	"Profile id"
//	@Success		200	{object}	StaffDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/staff/{id} [get]
func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetStaffByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "get staff")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateStaff handles PUT /api/staff/{id}.
//
//	@Summary		Update profile fields
//	@Tags			staff
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Profile id"
//	@Param			body	body		UpdateStaffRequest	true	"Fields to change"
//	@Success		200		{object}	StaffDetail
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/staff/{id} [put]
func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	var req teamservice.UpdateStaffRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := h.svc.UpdateStaff(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, err, "update staff")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteStaff handles DELETE /api/staff/{id}.
//
//	@Summary		Delete a staff profile
//	@Tags			staff
//	@Param			id	path	string	true	"Profile id"
//	@Success		204	"Profile deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/staff/{id} [delete]
func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteStaff(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "delete staff")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StaffNotes handles GET /api/staff/{id}/notes.
//
//	@Summary		List notes filed on a profile
//	@Tags			staff
//	@Produce		json
//	@Param			id	path		string	true	"Profile id"
//	@Success		200	{object}	NoteListResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/staff/{id}/notes [get]
func (h *Handler) StaffNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.StaffNotes(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "list notes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

// AddNote handles POST /api/staff/{id}/notes.
//
//	@Summary		File a note on a profile
//	@Tags			staff
//	@Accept			json
//	@Param			id		path	string			true	"Profile id"
//	@Param			body	body	AddNoteRequest	true	"Note fields"
//	@Success		204		"Note filed"
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/staff/{id}/notes [post]
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req teamservice.AddNoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.StaffID = chi.URLParam(r, "id")
	if err := h.svc.AddNote(r.Context(), req); err != nil {
		writeServiceError(w, err, "add note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StaffGoals handles GET /api/staff/{id}/goals.
//
//	@Summary		List goals filed on a profile
//	@Tags			staff
//	@Produce		json
//	@Param			id	path		string	true	"Profile id"
//	@Success		200	{object}	GoalListResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/staff/{id}/goals [get]
func (h *Handler) StaffGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.StaffGoals(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "list goals")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

// AddGoal handles POST /api/staff/{id}/goals.
//
//	@Summary		File a goal on a profile
//	@Tags			staff
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Profile id"
//	@Param			body	body		AddGoalRequest	true	"Goal fields"
//	@Success		201		{object}	GoalDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/staff/{id}/goals [post]
func (h *Handler) AddGoal(w http.ResponseWriter, r *http.Request) {
	var req teamservice.AddGoalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.StaffID = chi.URLParam(r, "id")
	g, err := h.svc.AddGoal(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "add goal")
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

// ListReminders handles GET /api/reminders.
//
//	@Summary		List reminders with optional filters
//	@Tags			reminders
//	@Produce		json
//	@Param			status		query		string	false	"Filter by status"	Enums(pending, overdue, completed)
//	@Param			staff_id	query		string	false	"Filter by linked profile"
//	@Success		200			{object}	ReminderListResponse
//	@Security		BearerAuth
//	@Router			/reminders [get]
func (h *Handler) ListReminders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := teamservice.ReminderFilter{
		Status:  q.Get("status"),
		StaffID: q.Get("staff_id"),
	}
	items, err := h.svc.ListReminders(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "list reminders")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reminders": items})
}

// AddReminder handles POST /api/reminders.
//
//	@Summary		Append a reminder to the shared log
//	@Tags			reminders
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AddReminderRequest	true	"Reminder fields"
//	@Success		201		{object}	ReminderDetail
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/reminders [post]
func (h *Handler) AddReminder(w http.ResponseWriter, r *http.Request) {
	var req teamservice.AddReminderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rem, err := h.svc.AddReminder(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "add reminder")
		return
	}
	writeJSON(w, http.StatusCreated, rem)
}

// CompleteReminder handles POST /api/reminders/{id}/complete.
//
//	@Summary		Mark a reminder completed
//	@Tags			reminders
//	@Produce		json
//	@Param			id	path		string	true	"Reminder id"
//	@Success		200	{object}	ReminderDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/reminders/{id}/complete [post]
func (h *Handler) CompleteReminder(w http.ResponseWriter, r *http.Request) {
	rem, err := h.svc.CompleteReminder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "complete reminder")
		return
	}
	writeJSON(w, http.StatusOK, rem)
}

// ProcessTranscript handles POST /api/transcripts.
//
//	@Summary		Analyze a call transcript and file the insights
//	@Tags			transcripts
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ProcessTranscriptRequest	true	"Transcript"
//	@Success		201		{object}	TranscriptResult
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/transcripts [post]
func (h *Handler) ProcessTranscript(w http.ResponseWriter, r *http.Request) {
	var req teamservice.ProcessTranscriptRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.ProcessTranscript(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "process transcript")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across record documents
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			kind	query		string	false	"Restrict to one kind: profile, transcript, reminders or document"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.SearchDocuments(r.Context(), q, r.URL.Query().Get("kind"), limit)
	if err != nil {
		writeServiceError(w, err, "search")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
