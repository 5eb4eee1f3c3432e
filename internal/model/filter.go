package model

// ProjectFilter holds criteria for querying projects.
type ProjectFilter struct {
	UserID string `json:"user_id,omitempty"`
	Search string `json:"search,omitempty"` // substring match on title/description
	Sort   string `json:"sort,omitempty"`   // e.g. "-created_at", "title"; prefix "-" = descending
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// TaskFilter holds criteria for querying tasks.
type TaskFilter struct {
	UserID    string         `json:"user_id,omitempty"`
	ProjectID string         `json:"project_id,omitempty"`
	Status    []TaskStatus   `json:"status,omitempty"`
	Priority  []TaskPriority `json:"priority,omitempty"`
	Search    string         `json:"search,omitempty"`
	Sort      string         `json:"sort,omitempty"`
	Limit     int            `json:"limit,omitempty"`
	Offset    int            `json:"offset,omitempty"`
}

// NoteFilter holds criteria for querying notes.
type NoteFilter struct {
	UserID    string `json:"user_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Search    string `json:"search,omitempty"`
	Sort      string `json:"sort,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}
