package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/aturzone/tasksphere/internal/events"
	"github.com/aturzone/tasksphere/internal/idgen"
	"github.com/aturzone/tasksphere/internal/model"
)

// createTaskInput is the JSON body for POST /v1/tasks.
type createTaskInput struct {
	UserID       string     `json:"user_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	ProjectID    string     `json:"project_id"`
	DueDate      *time.Time `json:"due_date"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	ReminderDate *time.Time `json:"reminder_date"`
	ReminderTime string     `json:"reminder_time"`
}

// updateTaskInput is the JSON body for PATCH /v1/tasks/{id}.
// Nil fields are left unchanged.
type updateTaskInput struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	Priority     *string    `json:"priority"`
	ProjectID    *string    `json:"project_id"`
	DueDate      *time.Time `json:"due_date"`
	StartTime    *string    `json:"start_time"`
	EndTime      *string    `json:"end_time"`
	ReminderDate *time.Time `json:"reminder_date"`
	ReminderTime *string    `json:"reminder_time"`
}

// handleCreateTask handles POST /v1/tasks.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in createTaskInput
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
	task := &model.Task{
		ID:           id,
		UserID:       userID(in.UserID),
		Title:        in.Title,
		Description:  in.Description,
		Status:       model.TaskStatus(in.Status),
		Priority:     model.TaskPriority(in.Priority),
		ProjectID:    in.ProjectID,
		DueDate:      in.DueDate,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		ReminderDate: in.ReminderDate,
		ReminderTime: in.ReminderTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if task.Status == "" {
		task.Status = model.TaskTodo
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}

	if err := model.ValidateTask(task); err != nil {
		writeDomainError(w, err, "task not found")
		return
	}

	if err := s.store.CreateTask(r.Context(), task); err != nil {
		writeDomainError(w, err, "task not found")
		return
	}

	s.publish(r.Context(), events.TopicTaskCreated, events.TaskCreated{Task: task})

	writeJSON(w, http.StatusCreated, task)
}

// handleListTasks handles GET /v1/tasks.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.TaskFilter{
		UserID:    userID(q.Get("user_id")),
		ProjectID: q.Get("project_id"),
		Search:    q.Get("search"),
		Sort:      q.Get("sort"),
		Limit:     queryInt(q.Get("limit")),
		Offset:    queryInt(q.Get("offset")),
	}

	if v := q.Get("status"); v != "" {
		for _, st := range strings.Split(v, ",") {
			filter.Status = append(filter.Status, model.TaskStatus(st))
		}
	}
	if v := q.Get("priority"); v != "" {
		for _, p := range strings.Split(v, ",") {
			filter.Priority = append(filter.Priority, model.TaskPriority(p))
		}
	}

	tasks, err := s.store.ListTasks(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	if tasks == nil {
		tasks = []*model.Task{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tasks": tasks,
		"total": len(tasks),
	})
}

// handleGetTask handles GET /v1/tasks/{id}.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "task not found")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// handleUpdateTask handles PATCH /v1/tasks/{id}.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "task not found")
		return
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = model.TaskStatus(*in.Status)
	}
	if in.Priority != nil {
		task.Priority = model.TaskPriority(*in.Priority)
	}
	if in.ProjectID != nil {
		task.ProjectID = *in.ProjectID
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.StartTime != nil {
		task.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		task.EndTime = *in.EndTime
	}
	if in.ReminderDate != nil {
		task.ReminderDate = in.ReminderDate
	}
	if in.ReminderTime != nil {
		task.ReminderTime = *in.ReminderTime
	}
	task.UpdatedAt = time.Now().UTC()

	if err := model.ValidateTask(task); err != nil {
		writeDomainError(w, err, "task not found")
		return
	}

	if err := s.store.UpdateTask(r.Context(), task); err != nil {
		writeDomainError(w, err, "task not found")
		return
	}

	s.publish(r.Context(), events.TopicTaskUpdated, events.TaskUpdated{Task: task})

	writeJSON(w, http.StatusOK, task)
}

// handleDeleteTask handles DELETE /v1/tasks/{id}.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.store.DeleteTask(r.Context(), id); err != nil {
		writeDomainError(w, err, "task not found")
		return
	}

	s.publish(r.Context(), events.TopicTaskDeleted, events.TaskDeleted{TaskID: id})

	w.WriteHeader(http.StatusNoContent)
}
