package server

import (
	"encoding/json"
	"net/http"

	"github.com/aturzone/tasksphere/internal/events"
	"github.com/aturzone/tasksphere/internal/model"
	"github.com/aturzone/tasksphere/internal/progress"
)

// createStepInput is the JSON body for POST /v1/projects/{id}/steps.
type createStepInput struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	WeightPercentage int    `json:"weight_percentage"`
	Status           string `json:"status"`
}

// updateStepInput is the JSON body for PATCH /v1/steps/{id}.
// Nil fields are left unchanged.
type updateStepInput struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	WeightPercentage *int    `json:"weight_percentage"`
	Status           *string `json:"status"`
}

// handleCreateStep handles POST /v1/projects/{id}/steps.
func (s *Server) handleCreateStep(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in createStepInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	step, err := s.engine.CreateStep(r.Context(), projectID, progress.StepInput{
		Title:       in.Title,
		Description: in.Description,
		Weight:      in.WeightPercentage,
		Status:      model.StepStatus(in.Status),
	})
	if err != nil {
		writeDomainError(w, err, "project not found")
		return
	}

	pct := s.eventProgress(r.Context(), projectID)
	s.publish(r.Context(), events.TopicStepCreated, events.StepCreated{Step: step, Progress: pct})

	writeJSON(w, http.StatusCreated, step)
}

// handleListSteps handles GET /v1/projects/{id}/steps.
func (s *Server) handleListSteps(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if _, err := s.store.GetProject(r.Context(), projectID); err != nil {
		writeDomainError(w, err, "project not found")
		return
	}

	steps, err := s.engine.ListSteps(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list steps")
		return
	}

	if steps == nil {
		steps = []*model.ProjectStep{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"steps": steps,
		"total": len(steps),
	})
}

// handleUpdateStep handles PATCH /v1/steps/{id}.
func (s *Server) handleUpdateStep(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updateStepInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	patch := progress.StepPatch{
		Title:       in.Title,
		Description: in.Description,
		Weight:      in.WeightPercentage,
	}
	if in.Status != nil {
		st := model.StepStatus(*in.Status)
		patch.Status = &st
	}

	step, err := s.engine.UpdateStep(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, err, "step not found")
		return
	}

	pct := s.eventProgress(r.Context(), step.ProjectID)
	s.publish(r.Context(), events.TopicStepUpdated, events.StepUpdated{Step: step, Progress: pct})

	writeJSON(w, http.StatusOK, step)
}

// handleDeleteStep handles DELETE /v1/steps/{id}.
func (s *Server) handleDeleteStep(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	step, err := s.store.GetStep(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "step not found")
		return
	}

	if err := s.engine.DeleteStep(r.Context(), id); err != nil {
		writeDomainError(w, err, "step not found")
		return
	}

	pct := s.eventProgress(r.Context(), step.ProjectID)
	s.publish(r.Context(), events.TopicStepDeleted, events.StepDeleted{
		StepID:    id,
		ProjectID: step.ProjectID,
		Progress:  pct,
	})

	w.WriteHeader(http.StatusNoContent)
}
