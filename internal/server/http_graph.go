package server

import (
	"encoding/json"
	"net/http"

	"github.com/aturzone/tasksphere/internal/events"
	"github.com/aturzone/tasksphere/internal/model"
)

// handleGetGraph handles GET /v1/graph.
// Returns nodes, edges, and aggregate stats for graph visualization.
// The view parameter selects the collections: "projects" (default) or "steps".
func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	view := model.GraphView(q.Get("view"))
	if view == "" {
		view = model.ViewProjects
	}
	if !view.IsValid() {
		writeError(w, http.StatusBadRequest, "view must be \"projects\" or \"steps\"")
		return
	}

	g, err := s.graph.Build(r.Context(), view, userID(q.Get("user_id")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build graph")
		return
	}

	writeJSON(w, http.StatusOK, g)
}

// handleGetConnections handles GET /v1/graph/connections.
func (s *Server) handleGetConnections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	nodeID := q.Get("node_id")
	if nodeID == "" {
		writeError(w, http.StatusBadRequest, "node_id is required")
		return
	}

	conns, err := s.graph.ConnectionsOf(r.Context(), userID(q.Get("user_id")), nodeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list connections")
		return
	}

	if conns == nil {
		conns = []*model.Connection{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"connections": conns,
		"total":       len(conns),
	})
}

// setConnectionsInput is the JSON body for PUT /v1/graph/nodes/{id}/connections.
type setConnectionsInput struct {
	UserID    string   `json:"user_id"`
	TargetIDs []string `json:"target_ids"`
}

// handleSetConnections handles PUT /v1/graph/nodes/{id}/connections.
// Replaces every connection touching the node with the given target set.
func (s *Server) handleSetConnections(w http.ResponseWriter, r *http.Request) {
	nodeID := r.PathValue("id")
	if nodeID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in setConnectionsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	conns, err := s.graph.SetConnections(r.Context(), userID(in.UserID), nodeID, in.TargetIDs)
	if err != nil {
		writeDomainError(w, err, "node not found")
		return
	}

	if conns == nil {
		conns = []*model.Connection{}
	}

	s.publish(r.Context(), events.TopicConnectionsReplaced, events.ConnectionsReplaced{
		NodeID:      nodeID,
		Connections: conns,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"connections": conns,
		"total":       len(conns),
	})
}
