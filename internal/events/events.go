package events

import (
	"context"

	"github.com/aturzone/tasksphere/internal/model"
)

// Event topic constants
const (
	TopicProjectCreated = "tasksphere.project.created"
	TopicProjectUpdated = "tasksphere.project.updated"
	TopicProjectDeleted = "tasksphere.project.deleted"

	TopicTaskCreated = "tasksphere.task.created"
	TopicTaskUpdated = "tasksphere.task.updated"
	TopicTaskDeleted = "tasksphere.task.deleted"

	TopicNoteCreated = "tasksphere.note.created"
	TopicNoteUpdated = "tasksphere.note.updated"
	TopicNoteDeleted = "tasksphere.note.deleted"

	TopicStepCreated = "tasksphere.step.created"
	TopicStepUpdated = "tasksphere.step.updated"
	TopicStepDeleted = "tasksphere.step.deleted"

	TopicConnectionsReplaced = "tasksphere.graph.connections.replaced"

	// Backup lifecycle events (emitted by the sync scheduler).
	TopicBackupCompleted = "tasksphere.backup.completed"
	TopicBackupFailed    = "tasksphere.backup.failed"
)

// Event types

type ProjectCreated struct {
	Project *model.Project `json:"project"`
}

type ProjectUpdated struct {
	Project *model.Project `json:"project"`
}

type ProjectDeleted struct {
	ProjectID string `json:"project_id"`
}

type TaskCreated struct {
	Task *model.Task `json:"task"`
}

type TaskUpdated struct {
	Task *model.Task `json:"task"`
}

type TaskDeleted struct {
	TaskID string `json:"task_id"`
}

type NoteCreated struct {
	Note *model.Note `json:"note"`
}

type NoteUpdated struct {
	Note *model.Note `json:"note"`
}

type NoteDeleted struct {
	NoteID string `json:"note_id"`
}

type StepCreated struct {
	Step *model.ProjectStep `json:"step"`
	// Progress of the owning project after the write.
	Progress int `json:"progress"`
}

type StepUpdated struct {
	Step     *model.ProjectStep `json:"step"`
	Progress int                `json:"progress"`
}

type StepDeleted struct {
	StepID    string `json:"step_id"`
	ProjectID string `json:"project_id"`
	Progress  int    `json:"progress"`
}

type ConnectionsReplaced struct {
	NodeID      string              `json:"node_id"`
	Connections []*model.Connection `json:"connections"`
}

// Backup events

type BackupCompleted struct {
	Destination string `json:"destination"`
	Records     int    `json:"records"`
}

type BackupFailed struct {
	Destination string `json:"destination"`
	Error       string `json:"error"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
