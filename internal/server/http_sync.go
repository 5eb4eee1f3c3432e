package server

import (
	"net/http"

	"github.com/aturzone/tasksphere/internal/model"
	"github.com/aturzone/tasksphere/internal/sync"
)

// handleGetStats handles GET /v1/stats.
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.URL.Query().Get("user_id"))
	ctx := r.Context()

	projects, err := s.store.ListProjects(ctx, model.ProjectFilter{UserID: uid})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}
	tasks, err := s.store.ListTasks(ctx, model.TaskFilter{UserID: uid})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}
	notes, err := s.store.ListNotes(ctx, model.NoteFilter{UserID: uid})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	stepCount := 0
	for _, p := range projects {
		steps, err := s.store.ListSteps(ctx, p.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to get stats")
			return
		}
		stepCount += len(steps)
	}

	byStatus := map[model.TaskStatus]int{
		model.TaskTodo:       0,
		model.TaskInProgress: 0,
		model.TaskDone:       0,
	}
	for _, t := range tasks {
		byStatus[t.Status]++
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"projects":        len(projects),
		"tasks":           len(tasks),
		"notes":           len(notes),
		"steps":           stepCount,
		"tasks_by_status": byStatus,
	})
}

// handleExport handles GET /v1/export.
// Streams the entire store as a JSONL backup.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/jsonl")
	w.Header().Set("Content-Disposition", `attachment; filename="tasksphere.jsonl"`)
	if err := sync.ExportJSONL(r.Context(), s.store, w); err != nil {
		// Headers are already sent; all we can do is log.
		s.log.Error("export failed", "error", err)
	}
}

// handleImport handles POST /v1/import.
// Replays a JSONL backup into the store and reports per-type counts.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	result, err := sync.ImportJSONL(r.Context(), s.store, r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
