// Package server exposes the TaskSphere REST API over net/http.
package server

import (
	"context"
	"log/slog"

	"github.com/aturzone/tasksphere/internal/events"
	"github.com/aturzone/tasksphere/internal/graph"
	"github.com/aturzone/tasksphere/internal/progress"
	"github.com/aturzone/tasksphere/internal/store"
)

// defaultUserID scopes requests that do not name a user. TaskSphere is a
// single-user system; the user id exists so that a future multi-tenant
// deployment does not need a schema change.
const defaultUserID = "local"

// Server bundles the store, the progress engine, the graph builder, and the
// event publisher behind the HTTP handlers.
type Server struct {
	store     store.Store
	publisher events.Publisher
	engine    *progress.Engine
	graph     *graph.Builder
	log       *slog.Logger
}

// NewServer returns a Server backed by the given store and publisher.
// A nil publisher disables event emission.
func NewServer(s store.Store, p events.Publisher, logger *slog.Logger) *Server {
	if p == nil {
		p = &events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:     s,
		publisher: p,
		engine:    progress.New(s, logger),
		graph:     graph.New(s, logger),
		log:       logger,
	}
}

// publish emits an event to the publisher. Best-effort: failures are logged
// but never block the request that triggered them.
func (s *Server) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.log.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

// eventProgress computes the project progress carried by step events.
// A storage fault here must not fail the request, but it is logged so a
// published progress of 0 is traceable to the read that produced it.
func (s *Server) eventProgress(ctx context.Context, projectID string) int {
	pct, err := s.engine.Progress(ctx, projectID)
	if err != nil {
		s.log.Warn("failed to compute progress for event", "project_id", projectID, "error", err)
	}
	return pct
}

// userID resolves the user scope for a request value, falling back to the
// single-user default.
func userID(v string) string {
	if v == "" {
		return defaultUserID
	}
	return v
}
