// Package graph derives the knowledge-graph view from the entity collections
// and manages the durable connection set between nodes.
package graph

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/aturzone/tasksphere/internal/model"
	"github.com/aturzone/tasksphere/internal/store"
)

// Node rendering constants, matching the visualization defaults.
const (
	projectRadius = 20
	noteRadius    = 8

	noteColor       = "#EC4899"
	doneColor       = "#10B981"
	inProgressColor = "#3B82F6"
	pendingColor    = "#F59E0B"
)

// peerChance is the sampling probability for decorative peer edges between
// same-status siblings. Peer edges carry no data meaning; callers that need
// reproducible output set it to 0 or 1.
const defaultPeerChance = 0.3

// Builder computes graph responses on demand. Nothing it produces is
// persisted except the connection set, which it manages separately.
type Builder struct {
	store store.Store
	log   *slog.Logger

	rng        *rand.Rand
	peerChance float64
}

// New creates a graph builder over the given store.
func New(st store.Store, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		store:      st,
		log:        logger,
		rng:        rand.New(rand.NewSource(rand.Int63())),
		peerChance: defaultPeerChance,
	}
}

// Build assembles the graph for one view. Structural edges and merged
// connections are deterministic over the stored state; peer edges are
// randomly sampled decoration.
func (b *Builder) Build(ctx context.Context, view model.GraphView, userID string) (*model.GraphResponse, error) {
	if !view.IsValid() {
		return nil, &model.ValidationError{Errors: []model.FieldError{{
			Field:   "view",
			Message: fmt.Sprintf("invalid value %q", view),
		}}}
	}

	switch view {
	case model.ViewSteps:
		return b.buildStepsView(ctx, userID)
	default:
		return b.buildProjectsView(ctx, userID)
	}
}

func (b *Builder) buildProjectsView(ctx context.Context, userID string) (*model.GraphResponse, error) {
	projects, err := b.store.ListProjects(ctx, model.ProjectFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	tasks, err := b.store.ListTasks(ctx, model.TaskFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	notes, err := b.store.ListNotes(ctx, model.NoteFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	g := newGraphAccum()
	for _, p := range projects {
		g.addNode(&model.GraphNode{
			ID:     p.ID,
			Type:   model.NodeProject,
			Label:  p.Title,
			Radius: projectRadius,
			Color:  projectColor(p),
		})
	}
	for _, t := range tasks {
		g.addNode(&model.GraphNode{
			ID:     t.ID,
			Type:   model.NodeTask,
			Label:  t.Title,
			Radius: taskRadius(t.Priority),
			Color:  taskColor(t.Status),
		})
		if t.ProjectID != "" && g.hasNode(t.ProjectID) {
			g.addEdge(&model.GraphEdge{Source: t.ID, Target: t.ProjectID, Kind: model.EdgeStructural})
		}
	}
	for _, n := range notes {
		g.addNode(&model.GraphNode{
			ID:     n.ID,
			Type:   model.NodeNote,
			Label:  n.Title,
			Radius: noteRadius,
			Color:  noteColor,
		})
		if n.ProjectID != "" && g.hasNode(n.ProjectID) {
			g.addEdge(&model.GraphEdge{Source: n.ID, Target: n.ProjectID, Kind: model.EdgeStructural})
		}
	}

	b.addPeerEdges(g, taskIDsByStatus(tasks))

	if err := b.mergeConnections(ctx, userID, g); err != nil {
		return nil, err
	}

	stats := &model.GraphStats{
		Projects: len(projects),
		Tasks:    len(tasks),
		Notes:    len(notes),
	}
	for _, t := range tasks {
		switch t.Status {
		case model.TaskDone:
			stats.TasksDone++
		case model.TaskTodo:
			stats.TasksTodo++
		}
	}
	return &model.GraphResponse{Nodes: g.nodes, Edges: g.edges, Stats: stats}, nil
}

func (b *Builder) buildStepsView(ctx context.Context, userID string) (*model.GraphResponse, error) {
	projects, err := b.store.ListProjects(ctx, model.ProjectFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	g := newGraphAccum()
	stats := &model.GraphStats{}
	for _, p := range projects {
		steps, err := b.store.ListSteps(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if len(steps) == 0 {
			continue
		}
		stats.Projects++
		g.addNode(&model.GraphNode{
			ID:     p.ID,
			Type:   model.NodeProject,
			Label:  p.Title,
			Radius: projectRadius,
			Color:  projectColor(p),
		})
		for _, s := range steps {
			stats.Steps++
			g.addNode(&model.GraphNode{
				ID:     s.ID,
				Type:   model.NodeStep,
				Label:  s.Title,
				Radius: stepRadius(s.WeightPercentage),
				Color:  stepColor(s.Status),
			})
			g.addEdge(&model.GraphEdge{Source: s.ID, Target: p.ID, Kind: model.EdgeStructural})
		}
		b.addPeerEdges(g, stepIDsByStatus(steps))
	}

	if err := b.mergeConnections(ctx, userID, g); err != nil {
		return nil, err
	}
	return &model.GraphResponse{Nodes: g.nodes, Edges: g.edges, Stats: stats}, nil
}

// mergeConnections folds persisted connections into the edge set. A
// connection contributes an edge only when both endpoints are present in the
// current node set; dangling references to deleted entities are dropped
// without error. Edges already present in either direction are not duplicated.
func (b *Builder) mergeConnections(ctx context.Context, userID string, g *graphAccum) error {
	conns, err := b.store.ListConnections(ctx, userID)
	if err != nil {
		return err
	}
	dropped := 0
	for _, c := range conns {
		if !g.hasNode(c.SourceID) || !g.hasNode(c.TargetID) {
			dropped++
			continue
		}
		if g.hasEdge(c.SourceID, c.TargetID) {
			continue
		}
		g.addEdge(&model.GraphEdge{
			Source:   c.SourceID,
			Target:   c.TargetID,
			Kind:     model.EdgeConnection,
			Strength: c.Strength,
		})
	}
	if dropped > 0 {
		b.log.Debug("dropped dangling connections", "user_id", userID, "count", dropped)
	}
	return nil
}

// addPeerEdges samples decorative edges between ids that share a status
// bucket. The sampling is intentionally random; two builds over the same
// state may disagree on which peer edges exist.
func (b *Builder) addPeerEdges(g *graphAccum, buckets map[string][]string) {
	for _, ids := range buckets {
		for i := 1; i < len(ids); i++ {
			if b.rng.Float64() >= b.peerChance {
				continue
			}
			if g.hasEdge(ids[i-1], ids[i]) {
				continue
			}
			g.addEdge(&model.GraphEdge{Source: ids[i-1], Target: ids[i], Kind: model.EdgePeer})
		}
	}
}

// graphAccum accumulates nodes and edges with O(1) existence checks. Edge
// keys are direction-agnostic.
type graphAccum struct {
	nodes   []*model.GraphNode
	edges   []*model.GraphEdge
	nodeSet map[string]bool
	edgeSet map[[2]string]bool
}

func newGraphAccum() *graphAccum {
	return &graphAccum{
		nodes:   []*model.GraphNode{},
		edges:   []*model.GraphEdge{},
		nodeSet: make(map[string]bool),
		edgeSet: make(map[[2]string]bool),
	}
}

func (g *graphAccum) addNode(n *model.GraphNode) {
	if g.nodeSet[n.ID] {
		return
	}
	g.nodeSet[n.ID] = true
	g.nodes = append(g.nodes, n)
}

func (g *graphAccum) hasNode(id string) bool { return g.nodeSet[id] }

func (g *graphAccum) addEdge(e *model.GraphEdge) {
	if g.hasEdge(e.Source, e.Target) {
		return
	}
	g.edgeSet[edgeKey(e.Source, e.Target)] = true
	g.edges = append(g.edges, e)
}

func (g *graphAccum) hasEdge(a, b string) bool { return g.edgeSet[edgeKey(a, b)] }

func edgeKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func taskIDsByStatus(tasks []*model.Task) map[string][]string {
	buckets := make(map[string][]string)
	for _, t := range tasks {
		buckets[string(t.Status)] = append(buckets[string(t.Status)], t.ID)
	}
	return buckets
}

func stepIDsByStatus(steps []*model.ProjectStep) map[string][]string {
	buckets := make(map[string][]string)
	for _, s := range steps {
		buckets[string(s.Status)] = append(buckets[string(s.Status)], s.ID)
	}
	return buckets
}

func projectColor(p *model.Project) string {
	if p.Color != "" {
		return p.Color
	}
	return inProgressColor
}

func taskColor(status model.TaskStatus) string {
	switch status {
	case model.TaskDone:
		return doneColor
	case model.TaskInProgress:
		return inProgressColor
	default:
		return pendingColor
	}
}

func stepColor(status model.StepStatus) string {
	switch status {
	case model.StepDone:
		return doneColor
	case model.StepInProgress:
		return inProgressColor
	default:
		return pendingColor
	}
}

func taskRadius(priority model.TaskPriority) float64 {
	switch priority {
	case model.PriorityHigh:
		return 12
	case model.PriorityLow:
		return 8
	default:
		return 10
	}
}

// stepRadius scales with the step's share of the project budget.
func stepRadius(weight int) float64 {
	return 5 + float64(weight)/10
}
