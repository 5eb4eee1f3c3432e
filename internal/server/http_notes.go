package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aturzone/tasksphere/internal/events"
	"github.com/aturzone/tasksphere/internal/idgen"
	"github.com/aturzone/tasksphere/internal/model"
)

// createNoteInput is the JSON body for POST /v1/notes.
type createNoteInput struct {
	UserID       string     `json:"user_id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	ProjectID    string     `json:"project_id"`
	NoteDate     *time.Time `json:"note_date"`
	ReminderDate *time.Time `json:"reminder_date"`
	ReminderTime string     `json:"reminder_time"`
}

// updateNoteInput is the JSON body for PATCH /v1/notes/{id}.
// Nil fields are left unchanged.
type updateNoteInput struct {
	Title        *string    `json:"title"`
	Content      *string    `json:"content"`
	ProjectID    *string    `json:"project_id"`
	NoteDate     *time.Time `json:"note_date"`
	ReminderDate *time.Time `json:"reminder_date"`
	ReminderTime *string    `json:"reminder_time"`
}

// handleCreateNote handles POST /v1/notes.
func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var in createNoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := idgen.Generate()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate id")
		return
	}

	now := time.Now().UTC()
	note := &model.Note{
		ID:           id,
		UserID:       userID(in.UserID),
		Title:        in.Title,
		Content:      in.Content,
		ProjectID:    in.ProjectID,
		NoteDate:     in.NoteDate,
		ReminderDate: in.ReminderDate,
		ReminderTime: in.ReminderTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := model.ValidateNote(note); err != nil {
		writeDomainError(w, err, "note not found")
		return
	}

	if err := s.store.CreateNote(r.Context(), note); err != nil {
		writeDomainError(w, err, "note not found")
		return
	}

	s.publish(r.Context(), events.TopicNoteCreated, events.NoteCreated{Note: note})

	writeJSON(w, http.StatusCreated, note)
}

// handleListNotes handles GET /v1/notes.
func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.NoteFilter{
		UserID:    userID(q.Get("user_id")),
		ProjectID: q.Get("project_id"),
		Search:    q.Get("search"),
		Sort:      q.Get("sort"),
		Limit:     queryInt(q.Get("limit")),
		Offset:    queryInt(q.Get("offset")),
	}

	notes, err := s.store.ListNotes(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list notes")
		return
	}

	if notes == nil {
		notes = []*model.Note{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"notes": notes,
		"total": len(notes),
	})
}

// handleGetNote handles GET /v1/notes/{id}.
func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	note, err := s.store.GetNote(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "note not found")
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// handleUpdateNote handles PATCH /v1/notes/{id}.
func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updateNoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	note, err := s.store.GetNote(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "note not found")
		return
	}

	if in.Title != nil {
		note.Title = *in.Title
	}
	if in.Content != nil {
		note.Content = *in.Content
	}
	if in.ProjectID != nil {
		note.ProjectID = *in.ProjectID
	}
	if in.NoteDate != nil {
		note.NoteDate = in.NoteDate
	}
	if in.ReminderDate != nil {
		note.ReminderDate = in.ReminderDate
	}
	if in.ReminderTime != nil {
		note.ReminderTime = *in.ReminderTime
	}
	note.UpdatedAt = time.Now().UTC()

	if err := model.ValidateNote(note); err != nil {
		writeDomainError(w, err, "note not found")
		return
	}

	if err := s.store.UpdateNote(r.Context(), note); err != nil {
		writeDomainError(w, err, "note not found")
		return
	}

	s.publish(r.Context(), events.TopicNoteUpdated, events.NoteUpdated{Note: note})

	writeJSON(w, http.StatusOK, note)
}

// handleDeleteNote handles DELETE /v1/notes/{id}.
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.store.DeleteNote(r.Context(), id); err != nil {
		writeDomainError(w, err, "note not found")
		return
	}

	s.publish(r.Context(), events.TopicNoteDeleted, events.NoteDeleted{NoteID: id})

	w.WriteHeader(http.StatusNoContent)
}
