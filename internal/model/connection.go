package model

import "time"

// DefaultConnectionStrength is the rendering weight assigned to user-created
// connections. It has no functional meaning beyond line thickness.
const DefaultConnectionStrength = 0.7

// Connection is a user-declared link between two graph nodes. Node ids may
// reference projects, tasks, or notes. Connections are undirected: (A,B) and
// (B,A) are the same edge.
type Connection struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SourceID  string    `json:"source_id"`
	TargetID  string    `json:"target_id"`
	Strength  float64   `json:"strength"`
	CreatedAt time.Time `json:"created_at"`
}

// Touches reports whether the connection has nodeID at either endpoint.
func (c *Connection) Touches(nodeID string) bool {
	return c.SourceID == nodeID || c.TargetID == nodeID
}
