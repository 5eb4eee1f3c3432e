// Package store defines the persistence interface for TaskSphere entities.
package store

import (
	"context"

	"github.com/aturzone/tasksphere/internal/model"
)

// Store defines the persistence contract consumed by the progress engine,
// the graph builder, and the HTTP server. Backends: postgres and jsonfile.
type Store interface {
	// Projects
	CreateProject(ctx context.Context, p *model.Project) error
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context, filter model.ProjectFilter) ([]*model.Project, error)
	UpdateProject(ctx context.Context, p *model.Project) error
	DeleteProject(ctx context.Context, id string) error

	// Tasks
	CreateTask(ctx context.Context, t *model.Task) error
	GetTask(ctx context.Context, id string) (*model.Task, error)
	ListTasks(ctx context.Context, filter model.TaskFilter) ([]*model.Task, error)
	UpdateTask(ctx context.Context, t *model.Task) error
	DeleteTask(ctx context.Context, id string) error

	// Notes
	CreateNote(ctx context.Context, n *model.Note) error
	GetNote(ctx context.Context, id string) (*model.Note, error)
	ListNotes(ctx context.Context, filter model.NoteFilter) ([]*model.Note, error)
	UpdateNote(ctx context.Context, n *model.Note) error
	DeleteNote(ctx context.Context, id string) error

	// Project steps. ListSteps returns a project's steps in creation order.
	CreateStep(ctx context.Context, s *model.ProjectStep) error
	GetStep(ctx context.Context, id string) (*model.ProjectStep, error)
	ListSteps(ctx context.Context, projectID string) ([]*model.ProjectStep, error)
	UpdateStep(ctx context.Context, s *model.ProjectStep) error
	DeleteStep(ctx context.Context, id string) error
	DeleteStepsByProject(ctx context.Context, projectID string) error

	// Graph connections. ReplaceConnections swaps a user's entire connection
	// set in one atomic write: readers observe either the old set or the new
	// set, never an interleaving.
	ListConnections(ctx context.Context, userID string) ([]*model.Connection, error)
	ReplaceConnections(ctx context.Context, userID string, conns []*model.Connection) error

	// Lifecycle
	Close() error
}
