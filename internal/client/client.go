// Package client provides a transport-agnostic interface for the TaskSphere
// service and an HTTP/JSON implementation that talks to the REST API.
package client

import (
	"context"
	"io"
	"time"

	"github.com/aturzone/tasksphere/internal/model"
)

// TaskSphereClient is the interface that all CLI commands use to communicate
// with the server. It is implemented by HTTPClient.
type TaskSphereClient interface {
	// Projects
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context, req *ListProjectsRequest) (*ListProjectsResponse, error)
	UpdateProject(ctx context.Context, id string, req *UpdateProjectRequest) (*model.Project, error)
	DeleteProject(ctx context.Context, id string) error
	GetProgress(ctx context.Context, projectID string) (int, error)

	// Steps
	CreateStep(ctx context.Context, projectID string, req *CreateStepRequest) (*model.ProjectStep, error)
	ListSteps(ctx context.Context, projectID string) ([]*model.ProjectStep, error)
	UpdateStep(ctx context.Context, id string, req *UpdateStepRequest) (*model.ProjectStep, error)
	DeleteStep(ctx context.Context, id string) error

	// Tasks
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*model.Task, error)
	GetTask(ctx context.Context, id string) (*model.Task, error)
	ListTasks(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error)
	UpdateTask(ctx context.Context, id string, req *UpdateTaskRequest) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Notes
	CreateNote(ctx context.Context, req *CreateNoteRequest) (*model.Note, error)
	GetNote(ctx context.Context, id string) (*model.Note, error)
	ListNotes(ctx context.Context, req *ListNotesRequest) (*ListNotesResponse, error)
	UpdateNote(ctx context.Context, id string, req *UpdateNoteRequest) (*model.Note, error)
	DeleteNote(ctx context.Context, id string) error

	// Graph
	GetGraph(ctx context.Context, view string) (*model.GraphResponse, error)
	GetConnections(ctx context.Context, nodeID string) ([]*model.Connection, error)
	SetConnections(ctx context.Context, nodeID string, targetIDs []string) ([]*model.Connection, error)

	// Stats
	GetStats(ctx context.Context) (*StatsResponse, error)

	// Backup
	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) (*ImportResponse, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateProjectRequest holds parameters for creating a project.
type CreateProjectRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Color        string     `json:"color,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	ReminderTime string     `json:"reminder_time,omitempty"`
}

// UpdateProjectRequest holds optional parameters for updating a project.
// Nil pointer fields mean "don't change".
type UpdateProjectRequest struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Color        *string    `json:"color,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	ReminderTime *string    `json:"reminder_time,omitempty"`
}

// ListProjectsRequest holds parameters for listing projects.
type ListProjectsRequest struct {
	Search string `json:"search,omitempty"`
	Sort   string `json:"sort,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// ListProjectsResponse is the response from ListProjects.
type ListProjectsResponse struct {
	Projects []*model.Project `json:"projects"`
	Total    int              `json:"total"`
}

// CreateStepRequest holds parameters for adding a step to a project.
type CreateStepRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	WeightPercentage int    `json:"weight_percentage"`
	Status           string `json:"status,omitempty"`
}

// UpdateStepRequest holds optional parameters for updating a step.
type UpdateStepRequest struct {
	Title            *string `json:"title,omitempty"`
	Description      *string `json:"description,omitempty"`
	WeightPercentage *int    `json:"weight_percentage,omitempty"`
	Status           *string `json:"status,omitempty"`
}

// CreateTaskRequest holds parameters for creating a task.
type CreateTaskRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status,omitempty"`
	Priority     string     `json:"priority,omitempty"`
	ProjectID    string     `json:"project_id,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	StartTime    string     `json:"start_time,omitempty"`
	EndTime      string     `json:"end_time,omitempty"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	ReminderTime string     `json:"reminder_time,omitempty"`
}

// UpdateTaskRequest holds optional parameters for updating a task.
type UpdateTaskRequest struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Status       *string    `json:"status,omitempty"`
	Priority     *string    `json:"priority,omitempty"`
	ProjectID    *string    `json:"project_id,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	StartTime    *string    `json:"start_time,omitempty"`
	EndTime      *string    `json:"end_time,omitempty"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	ReminderTime *string    `json:"reminder_time,omitempty"`
}

// ListTasksRequest holds parameters for listing tasks.
type ListTasksRequest struct {
	ProjectID string   `json:"project_id,omitempty"`
	Status    []string `json:"status,omitempty"`
	Priority  []string `json:"priority,omitempty"`
	Search    string   `json:"search,omitempty"`
	Sort      string   `json:"sort,omitempty"`
	Limit     int      `json:"limit,omitempty"`
	Offset    int      `json:"offset,omitempty"`
}

// ListTasksResponse is the response from ListTasks.
type ListTasksResponse struct {
	Tasks []*model.Task `json:"tasks"`
	Total int           `json:"total"`
}

// CreateNoteRequest holds parameters for creating a note.
type CreateNoteRequest struct {
	Title        string     `json:"title"`
	Content      string     `json:"content,omitempty"`
	ProjectID    string     `json:"project_id,omitempty"`
	NoteDate     *time.Time `json:"note_date,omitempty"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	ReminderTime string     `json:"reminder_time,omitempty"`
}

// UpdateNoteRequest holds optional parameters for updating a note.
type UpdateNoteRequest struct {
	Title        *string    `json:"title,omitempty"`
	Content      *string    `json:"content,omitempty"`
	ProjectID    *string    `json:"project_id,omitempty"`
	NoteDate     *time.Time `json:"note_date,omitempty"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	ReminderTime *string    `json:"reminder_time,omitempty"`
}

// ListNotesRequest holds parameters for listing notes.
type ListNotesRequest struct {
	ProjectID string `json:"project_id,omitempty"`
	Search    string `json:"search,omitempty"`
	Sort      string `json:"sort,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

// ListNotesResponse is the response from ListNotes.
type ListNotesResponse struct {
	Notes []*model.Note `json:"notes"`
	Total int           `json:"total"`
}

// StatsResponse is the response from GetStats.
type StatsResponse struct {
	Projects      int            `json:"projects"`
	Tasks         int            `json:"tasks"`
	Notes         int            `json:"notes"`
	Steps         int            `json:"steps"`
	TasksByStatus map[string]int `json:"tasks_by_status"`
}

// ImportResponse summarizes what an Import call restored.
type ImportResponse struct {
	Projects    int `json:"projects"`
	Tasks       int `json:"tasks"`
	Notes       int `json:"notes"`
	Steps       int `json:"steps"`
	Connections int `json:"connections"`
}
