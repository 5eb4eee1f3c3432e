package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aturzone/tasksphere/internal/events"
	"github.com/aturzone/tasksphere/internal/idgen"
	"github.com/aturzone/tasksphere/internal/model"
)

// createProjectInput is the JSON body for POST /v1/projects.
type createProjectInput struct {
	UserID       string     `json:"user_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Color        string     `json:"color"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	ReminderDate *time.Time `json:"reminder_date"`
	ReminderTime string     `json:"reminder_time"`
}

// updateProjectInput is the JSON body for PATCH /v1/projects/{id}.
// Nil fields are left unchanged.
type updateProjectInput struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Color        *string    `json:"color"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	ReminderDate *time.Time `json:"reminder_date"`
	ReminderTime *string    `json:"reminder_time"`
}

// handleCreateProject handles POST /v1/projects.
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var in createProjectInput
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
	project := &model.Project{
		ID:           id,
		UserID:       userID(in.UserID),
		Title:        in.Title,
		Description:  in.Description,
		Color:        in.Color,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		ReminderDate: in.ReminderDate,
		ReminderTime: in.ReminderTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if project.Color == "" {
		project.Color = model.RandomProjectColor()
	}

	if err := model.ValidateProject(project); err != nil {
		writeDomainError(w, err, "project not found")
		return
	}

	if err := s.store.CreateProject(r.Context(), project); err != nil {
		writeDomainError(w, err, "project not found")
		return
	}

	s.publish(r.Context(), events.TopicProjectCreated, events.ProjectCreated{Project: project})

	writeJSON(w, http.StatusCreated, project)
}

// handleListProjects handles GET /v1/projects.
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ProjectFilter{
		UserID: userID(q.Get("user_id")),
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
		Limit:  queryInt(q.Get("limit")),
		Offset: queryInt(q.Get("offset")),
	}

	projects, err := s.store.ListProjects(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	// Ensure projects is never null in JSON output.
	if projects == nil {
		projects = []*model.Project{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"projects": projects,
		"total":    len(projects),
	})
}

// handleGetProject handles GET /v1/projects/{id}.
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	project, err := s.store.GetProject(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "project not found")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// handleUpdateProject handles PATCH /v1/projects/{id}.
func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updateProjectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	project, err := s.store.GetProject(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "project not found")
		return
	}

	if in.Title != nil {
		project.Title = *in.Title
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Color != nil {
		project.Color = *in.Color
	}
	if in.StartDate != nil {
		project.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		project.EndDate = in.EndDate
	}
	if in.ReminderDate != nil {
		project.ReminderDate = in.ReminderDate
	}
	if in.ReminderTime != nil {
		project.ReminderTime = *in.ReminderTime
	}
	project.UpdatedAt = time.Now().UTC()

	if err := model.ValidateProject(project); err != nil {
		writeDomainError(w, err, "project not found")
		return
	}

	if err := s.store.UpdateProject(r.Context(), project); err != nil {
		writeDomainError(w, err, "project not found")
		return
	}

	s.publish(r.Context(), events.TopicProjectUpdated, events.ProjectUpdated{Project: project})

	writeJSON(w, http.StatusOK, project)
}

// handleDeleteProject handles DELETE /v1/projects/{id}.
// Deleting a project also removes its steps; tasks and notes keep their
// records and lose the association at read time.
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.store.DeleteProject(r.Context(), id); err != nil {
		writeDomainError(w, err, "project not found")
		return
	}

	if err := s.store.DeleteStepsByProject(r.Context(), id); err != nil {
		s.log.Warn("failed to delete project steps", "project_id", id, "error", err)
	}

	s.publish(r.Context(), events.TopicProjectDeleted, events.ProjectDeleted{ProjectID: id})

	w.WriteHeader(http.StatusNoContent)
}

// handleGetProgress handles GET /v1/projects/{id}/progress.
func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if _, err := s.store.GetProject(r.Context(), id); err != nil {
		writeDomainError(w, err, "project not found")
		return
	}

	pct, err := s.engine.Progress(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "project not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"project_id": id,
		"progress":   pct,
	})
}
