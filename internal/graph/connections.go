package graph

import (
	"context"
	"time"

	"github.com/aturzone/tasksphere/internal/idgen"
	"github.com/aturzone/tasksphere/internal/model"
)

// SetConnections replaces every connection touching nodeID with one
// connection per target id. The whole replacement is a single store write;
// on failure the stored set is unchanged. Self-references and duplicate
// targets are silently collapsed.
func (b *Builder) SetConnections(ctx context.Context, userID, nodeID string, targetIDs []string) ([]*model.Connection, error) {
	existing, err := b.store.ListConnections(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := make([]*model.Connection, 0, len(existing)+len(targetIDs))
	for _, c := range existing {
		if !c.Touches(nodeID) {
			next = append(next, c)
		}
	}

	now := time.Now().UTC()
	seen := map[string]bool{nodeID: true}
	created := make([]*model.Connection, 0, len(targetIDs))
	for _, target := range targetIDs {
		if seen[target] {
			continue
		}
		seen[target] = true
		id, err := idgen.Generate()
		if err != nil {
			return nil, err
		}
		c := &model.Connection{
			ID:        id,
			UserID:    userID,
			SourceID:  nodeID,
			TargetID:  target,
			Strength:  model.DefaultConnectionStrength,
			CreatedAt: now,
		}
		next = append(next, c)
		created = append(created, c)
	}

	if err := b.store.ReplaceConnections(ctx, userID, next); err != nil {
		return nil, err
	}
	b.log.Debug("connections replaced", "user_id", userID, "node_id", nodeID, "count", len(created))
	return created, nil
}

// ConnectionsOf returns every stored connection with nodeID at either
// endpoint.
func (b *Builder) ConnectionsOf(ctx context.Context, userID, nodeID string) ([]*model.Connection, error) {
	conns, err := b.store.ListConnections(ctx, userID)
	if err != nil {
		return nil, err
	}
	matched := make([]*model.Connection, 0, len(conns))
	for _, c := range conns {
		if c.Touches(nodeID) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}
