package postgres

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/aturzone/tasksphere/internal/model"
)

// scannable is satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanProject(row scannable) (*model.Project, error) {
	var (
		p            model.Project
		description  sql.NullString
		color        sql.NullString
		startDate    sql.NullTime
		endDate      sql.NullTime
		reminderDate sql.NullTime
		reminderTime sql.NullString
		stepsJSON    []byte
	)
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&description,
		&color,
		&startDate,
		&endDate,
		&reminderDate,
		&reminderTime,
		&p.Progress,
		&stepsJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Color = color.String
	p.StartDate = timePtr(startDate)
	p.EndDate = timePtr(endDate)
	p.ReminderDate = timePtr(reminderDate)
	p.ReminderTime = reminderTime.String
	if len(stepsJSON) > 0 {
		if err := json.Unmarshal(stepsJSON, &p.Steps); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func scanTask(row scannable) (*model.Task, error) {
	var (
		t            model.Task
		description  sql.NullString
		status       string
		priority     string
		projectID    sql.NullString
		dueDate      sql.NullTime
		startTime    sql.NullString
		endTime      sql.NullString
		reminderDate sql.NullTime
		reminderTime sql.NullString
	)
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&description,
		&status,
		&priority,
		&projectID,
		&dueDate,
		&startTime,
		&endTime,
		&reminderDate,
		&reminderTime,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Description = description.String
	t.Status = model.TaskStatus(status)
	t.Priority = model.TaskPriority(priority)
	t.ProjectID = projectID.String
	t.DueDate = timePtr(dueDate)
	t.StartTime = startTime.String
	t.EndTime = endTime.String
	t.ReminderDate = timePtr(reminderDate)
	t.ReminderTime = reminderTime.String
	return &t, nil
}

func scanNote(row scannable) (*model.Note, error) {
	var (
		n            model.Note
		content      sql.NullString
		projectID    sql.NullString
		noteDate     sql.NullTime
		reminderDate sql.NullTime
		reminderTime sql.NullString
	)
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&content,
		&projectID,
		&noteDate,
		&reminderDate,
		&reminderTime,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	n.Content = content.String
	n.ProjectID = projectID.String
	n.NoteDate = timePtr(noteDate)
	n.ReminderDate = timePtr(reminderDate)
	n.ReminderTime = reminderTime.String
	return &n, nil
}

func scanStep(row scannable) (*model.ProjectStep, error) {
	var (
		s           model.ProjectStep
		description sql.NullString
		status      string
	)
	err := row.Scan(
		&s.ID,
		&s.ProjectID,
		&s.Title,
		&description,
		&s.WeightPercentage,
		&status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Description = description.String
	s.Status = model.StepStatus(status)
	return &s, nil
}

func scanConnection(row scannable) (*model.Connection, error) {
	var c model.Connection
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.SourceID,
		&c.TargetID,
		&c.Strength,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// --- null helpers ---

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// stepsSnapshotJSON serializes the denormalized step snapshot for the
// projects.steps column. An empty snapshot is stored as an empty array so
// readers never see SQL NULL.
func stepsSnapshotJSON(steps []*model.ProjectStep) []byte {
	if len(steps) == 0 {
		return []byte("[]")
	}
	b, err := json.Marshal(steps)
	if err != nil {
		return []byte("[]")
	}
	return b
}
