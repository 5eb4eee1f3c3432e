package model

import (
	"math/rand"
	"time"
)

// projectColors is the default palette assigned to new projects.
var projectColors = []string{
	"#10B981", // green
	"#3B82F6", // blue
	"#8B5CF6", // purple
	"#EC4899", // pink
	"#F59E0B", // yellow
	"#EF4444", // red
}

// RandomProjectColor picks a color from the default palette.
func RandomProjectColor() string {
	return projectColors[rand.Intn(len(projectColors))]
}

// Project is the top-level grouping for tasks, notes, and steps.
type Project struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Color        string     `json:"color,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	ReminderTime string     `json:"reminder_time,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Derived data -- kept in sync by the progress engine after every step
	// mutation. The project_steps records remain authoritative; this is a
	// denormalized snapshot for callers that cannot join collections.
	Progress int            `json:"progress"`
	Steps    []*ProjectStep `json:"steps,omitempty"`
}
