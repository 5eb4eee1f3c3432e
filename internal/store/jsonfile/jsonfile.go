// Package jsonfile implements the store.Store interface backed by JSON files
// on local disk, one file per collection. It is the offline/local-first
// backend; the whole working set is held in memory and every mutation
// rewrites the owning collection file via temp-file rename, so a crash never
// leaves a half-written collection behind.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/aturzone/tasksphere/internal/model"
	"github.com/aturzone/tasksphere/internal/store"
)

// Collection file names. These match the entity-type keys used by the
// backup/export format, so a data directory doubles as a readable backup.
const (
	fileProjects    = "projects.json"
	fileTasks       = "tasks.json"
	fileNotes       = "notes.json"
	fileSteps       = "project-steps.json"
	fileConnections = "connections.json"
)

// Store implements store.Store backed by JSON files under a data directory.
type Store struct {
	dir string

	mu          sync.RWMutex
	projects    []*model.Project
	tasks       []*model.Task
	notes       []*model.Note
	steps       []*model.ProjectStep
	connections []*model.Connection
}

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Open loads all collections from dir, creating the directory if needed.
// Missing collection files start empty.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, store.NewStorageError("open data dir", err)
	}
	s := &Store{dir: dir}

	if err := loadFile(filepath.Join(dir, fileProjects), &s.projects); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(dir, fileTasks), &s.tasks); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(dir, fileNotes), &s.notes); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(dir, fileSteps), &s.steps); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(dir, fileConnections), &s.connections); err != nil {
		return nil, err
	}
	return s, nil
}

// Close is a no-op; every mutation is persisted synchronously.
func (s *Store) Close() error { return nil }

func loadFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return store.NewStorageError("read "+filepath.Base(path), err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return store.NewStorageError("decode "+filepath.Base(path), err)
	}
	return nil
}

// persist writes a collection to its file atomically: marshal, write to a
// temp file in the same directory, then rename over the target.
func (s *Store) persist(name string, collection any) error {
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return store.NewStorageError("encode "+name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return store.NewStorageError("write "+name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return store.NewStorageError("write "+name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return store.NewStorageError("write "+name, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return store.NewStorageError("write "+name, err)
	}
	return nil
}

// --- Projects ---

func (s *Store) CreateProject(_ context.Context, p *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(cloneSlice(s.projects), cloneProject(p))
	if err := s.persist(fileProjects, next); err != nil {
		return err
	}
	s.projects = next
	return nil
}

func (s *Store) GetProject(_ context.Context, id string) (*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.ID == id {
			return cloneProject(p), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListProjects(_ context.Context, filter model.ProjectFilter) ([]*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Project
	for _, p := range s.projects {
		if filter.UserID != "" && p.UserID != filter.UserID {
			continue
		}
		if filter.Search != "" && !matchSearch(filter.Search, p.Title, p.Description) {
			continue
		}
		result = append(result, cloneProject(p))
	}
	sortProjects(result, filter.Sort)
	return applyWindow(result, filter.Offset, filter.Limit), nil
}

func (s *Store) UpdateProject(_ context.Context, p *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSlice(s.projects)
	for i, existing := range next {
		if existing.ID == p.ID {
			next[i] = cloneProject(p)
			if err := s.persist(fileProjects, next); err != nil {
				return err
			}
			s.projects = next
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*model.Project, 0, len(s.projects))
	found := false
	for _, p := range s.projects {
		if p.ID == id {
			found = true
			continue
		}
		next = append(next, p)
	}
	if !found {
		return store.ErrNotFound
	}
	if err := s.persist(fileProjects, next); err != nil {
		return err
	}
	s.projects = next
	return nil
}

// --- Tasks ---

func (s *Store) CreateTask(_ context.Context, t *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(cloneSlice(s.tasks), cloneTask(t))
	if err := s.persist(fileTasks, next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}

func (s *Store) GetTask(_ context.Context, id string) (*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return cloneTask(t), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListTasks(_ context.Context, filter model.TaskFilter) ([]*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Task
	for _, t := range s.tasks {
		if filter.UserID != "" && t.UserID != filter.UserID {
			continue
		}
		if filter.ProjectID != "" && t.ProjectID != filter.ProjectID {
			continue
		}
		if len(filter.Status) > 0 && !containsTaskStatus(filter.Status, t.Status) {
			continue
		}
		if len(filter.Priority) > 0 && !containsTaskPriority(filter.Priority, t.Priority) {
			continue
		}
		if filter.Search != "" && !matchSearch(filter.Search, t.Title, t.Description) {
			continue
		}
		result = append(result, cloneTask(t))
	}
	sortTasks(result, filter.Sort)
	return applyWindow(result, filter.Offset, filter.Limit), nil
}

func (s *Store) UpdateTask(_ context.Context, t *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSlice(s.tasks)
	for i, existing := range next {
		if existing.ID == t.ID {
			next[i] = cloneTask(t)
			if err := s.persist(fileTasks, next); err != nil {
				return err
			}
			s.tasks = next
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*model.Task, 0, len(s.tasks))
	found := false
	for _, t := range s.tasks {
		if t.ID == id {
			found = true
			continue
		}
		next = append(next, t)
	}
	if !found {
		return store.ErrNotFound
	}
	if err := s.persist(fileTasks, next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}

// --- Notes ---

func (s *Store) CreateNote(_ context.Context, n *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(cloneSlice(s.notes), cloneNote(n))
	if err := s.persist(fileNotes, next); err != nil {
		return err
	}
	s.notes = next
	return nil
}

func (s *Store) GetNote(_ context.Context, id string) (*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.notes {
		if n.ID == id {
			return cloneNote(n), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListNotes(_ context.Context, filter model.NoteFilter) ([]*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Note
	for _, n := range s.notes {
		if filter.UserID != "" && n.UserID != filter.UserID {
			continue
		}
		if filter.ProjectID != "" && n.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Search != "" && !matchSearch(filter.Search, n.Title, n.Content) {
			continue
		}
		result = append(result, cloneNote(n))
	}
	sortNotes(result, filter.Sort)
	return applyWindow(result, filter.Offset, filter.Limit), nil
}

func (s *Store) UpdateNote(_ context.Context, n *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSlice(s.notes)
	for i, existing := range next {
		if existing.ID == n.ID {
			next[i] = cloneNote(n)
			if err := s.persist(fileNotes, next); err != nil {
				return err
			}
			s.notes = next
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteNote(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*model.Note, 0, len(s.notes))
	found := false
	for _, n := range s.notes {
		if n.ID == id {
			found = true
			continue
		}
		next = append(next, n)
	}
	if !found {
		return store.ErrNotFound
	}
	if err := s.persist(fileNotes, next); err != nil {
		return err
	}
	s.notes = next
	return nil
}

// --- Steps ---

func (s *Store) CreateStep(_ context.Context, step *model.ProjectStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(cloneSlice(s.steps), cloneStep(step))
	if err := s.persist(fileSteps, next); err != nil {
		return err
	}
	s.steps = next
	return nil
}

func (s *Store) GetStep(_ context.Context, id string) (*model.ProjectStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, step := range s.steps {
		if step.ID == id {
			return cloneStep(step), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListSteps(_ context.Context, projectID string) ([]*model.ProjectStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Insertion order is creation order; no re-sorting.
	var result []*model.ProjectStep
	for _, step := range s.steps {
		if step.ProjectID == projectID {
			result = append(result, cloneStep(step))
		}
	}
	return result, nil
}

func (s *Store) UpdateStep(_ context.Context, step *model.ProjectStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSlice(s.steps)
	for i, existing := range next {
		if existing.ID == step.ID {
			next[i] = cloneStep(step)
			if err := s.persist(fileSteps, next); err != nil {
				return err
			}
			s.steps = next
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteStep(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*model.ProjectStep, 0, len(s.steps))
	found := false
	for _, step := range s.steps {
		if step.ID == id {
			found = true
			continue
		}
		next = append(next, step)
	}
	if !found {
		return store.ErrNotFound
	}
	if err := s.persist(fileSteps, next); err != nil {
		return err
	}
	s.steps = next
	return nil
}

func (s *Store) DeleteStepsByProject(_ context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*model.ProjectStep, 0, len(s.steps))
	for _, step := range s.steps {
		if step.ProjectID != projectID {
			next = append(next, step)
		}
	}
	if len(next) == len(s.steps) {
		return nil
	}
	if err := s.persist(fileSteps, next); err != nil {
		return err
	}
	s.steps = next
	return nil
}

// --- Connections ---

func (s *Store) ListConnections(_ context.Context, userID string) ([]*model.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Connection
	for _, c := range s.connections {
		if userID == "" || c.UserID == userID {
			result = append(result, cloneConnection(c))
		}
	}
	return result, nil
}

func (s *Store) ReplaceConnections(_ context.Context, userID string, conns []*model.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Keep other users' connections, swap this user's set wholesale. The
	// single rename in persist is the atomicity point: on failure the old
	// file and the old in-memory set both survive untouched.
	next := make([]*model.Connection, 0, len(s.connections)+len(conns))
	for _, c := range s.connections {
		if c.UserID != userID {
			next = append(next, c)
		}
	}
	for _, c := range conns {
		next = append(next, cloneConnection(c))
	}
	if err := s.persist(fileConnections, next); err != nil {
		return err
	}
	s.connections = next
	return nil
}

// --- helpers ---

func matchSearch(query string, fields ...string) bool {
	for _, f := range fields {
		if containsFold(f, query) {
			return true
		}
	}
	return false
}

func applyWindow[T any](items []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func cloneSlice[T any](in []*T) []*T {
	out := make([]*T, len(in))
	copy(out, in)
	return out
}

func cloneProject(p *model.Project) *model.Project {
	c := *p
	if p.Steps != nil {
		c.Steps = make([]*model.ProjectStep, len(p.Steps))
		for i, s := range p.Steps {
			c.Steps[i] = cloneStep(s)
		}
	}
	return &c
}

func cloneTask(t *model.Task) *model.Task {
	c := *t
	return &c
}

func cloneNote(n *model.Note) *model.Note {
	c := *n
	return &c
}

func cloneStep(s *model.ProjectStep) *model.ProjectStep {
	c := *s
	return &c
}

func cloneConnection(c *model.Connection) *model.Connection {
	cc := *c
	return &cc
}

func containsTaskStatus(list []model.TaskStatus, s model.TaskStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsTaskPriority(list []model.TaskPriority, p model.TaskPriority) bool {
	for _, v := range list {
		if v == p {
			return true
		}
	}
	return false
}
