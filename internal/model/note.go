package model

import "time"

// Note is a free-form text entry, optionally attached to a project.
type Note struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Title        string     `json:"title"`
	Content      string     `json:"content,omitempty"`
	ProjectID    string     `json:"project_id,omitempty"`
	NoteDate     *time.Time `json:"note_date,omitempty"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	ReminderTime string     `json:"reminder_time,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
