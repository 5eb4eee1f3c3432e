package model

// GraphView selects which entity collections feed the graph.
type GraphView string

const (
	// ViewProjects renders projects, tasks, and notes.
	ViewProjects GraphView = "projects"
	// ViewSteps renders projects with steps, and their steps.
	ViewSteps GraphView = "steps"
)

// IsValid checks whether the view is a known value.
func (v GraphView) IsValid() bool {
	return v == ViewProjects || v == ViewSteps
}

// Node types emitted by the graph builder.
const (
	NodeProject = "project"
	NodeTask    = "task"
	NodeNote    = "note"
	NodeStep    = "step"
)

// Edge kinds emitted by the graph builder.
const (
	// EdgeStructural is implied by ownership (task/note/step -> project).
	EdgeStructural = "structural"
	// EdgeConnection comes from a persisted user-created connection.
	EdgeConnection = "connection"
	// EdgePeer is decorative sampling between same-status siblings; it is
	// non-deterministic and carries no data-integrity meaning.
	EdgePeer = "peer"
)

// GraphNode is one renderable node. Computed per request, never persisted.
type GraphNode struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Label  string  `json:"label"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

// GraphEdge is one renderable edge between two node ids.
type GraphEdge struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Kind     string  `json:"kind"`
	Strength float64 `json:"strength,omitempty"`
}

// GraphStats holds aggregate counts for the graph view header.
type GraphStats struct {
	Projects  int `json:"projects"`
	Tasks     int `json:"tasks"`
	Notes     int `json:"notes"`
	Steps     int `json:"steps"`
	TasksTodo int `json:"tasks_todo"`
	TasksDone int `json:"tasks_done"`
}

// GraphResponse is the payload for the graph visualization endpoint.
type GraphResponse struct {
	Nodes []*GraphNode `json:"nodes"`
	Edges []*GraphEdge `json:"edges"`
	Stats *GraphStats  `json:"stats"`
}
