package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aturzone/tasksphere/internal/model"
	"github.com/aturzone/tasksphere/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	return s
}

func TestProjectCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	p := &model.Project{ID: "ts-p1", UserID: "u1", Title: "Thesis", Color: "#10B981", CreatedAt: now, UpdatedAt: now}
	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject() error: %v", err)
	}

	got, err := s.GetProject(ctx, "ts-p1")
	if err != nil {
		t.Fatalf("GetProject() error: %v", err)
	}
	if got.Title != "Thesis" {
		t.Errorf("GetProject().Title = %q, want %q", got.Title, "Thesis")
	}

	got.Title = "Thesis v2"
	if err := s.UpdateProject(ctx, got); err != nil {
		t.Fatalf("UpdateProject() error: %v", err)
	}
	got2, _ := s.GetProject(ctx, "ts-p1")
	if got2.Title != "Thesis v2" {
		t.Errorf("after update, Title = %q, want %q", got2.Title, "Thesis v2")
	}

	if err := s.DeleteProject(ctx, "ts-p1"); err != nil {
		t.Fatalf("DeleteProject() error: %v", err)
	}
	if _, err := s.GetProject(ctx, "ts-p1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetProject(deleted) error = %v, want ErrNotFound", err)
	}
}

func TestGetProject_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetProject(context.Background(), "ts-nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetProject(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListTasks_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	tasks := []*model.Task{
		{ID: "t1", UserID: "u1", Title: "write intro", Status: model.TaskTodo, Priority: model.PriorityHigh, ProjectID: "p1", CreatedAt: now, UpdatedAt: now},
		{ID: "t2", UserID: "u1", Title: "review draft", Status: model.TaskDone, Priority: model.PriorityLow, ProjectID: "p1", CreatedAt: now, UpdatedAt: now},
		{ID: "t3", UserID: "u2", Title: "unrelated", Status: model.TaskTodo, Priority: model.PriorityMedium, CreatedAt: now, UpdatedAt: now},
	}
	for _, task := range tasks {
		if err := s.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask(%s) error: %v", task.ID, err)
		}
	}

	for _, tc := range []struct {
		name    string
		filter  model.TaskFilter
		wantIDs []string
	}{
		{"by user", model.TaskFilter{UserID: "u1"}, []string{"t1", "t2"}},
		{"by project", model.TaskFilter{ProjectID: "p1"}, []string{"t1", "t2"}},
		{"by status", model.TaskFilter{Status: []model.TaskStatus{model.TaskDone}}, []string{"t2"}},
		{"by priority", model.TaskFilter{Priority: []model.TaskPriority{model.PriorityHigh}}, []string{"t1"}},
		{"by search", model.TaskFilter{Search: "DRAFT"}, []string{"t2"}},
		{"limit", model.TaskFilter{UserID: "u1", Limit: 1}, []string{"t1"}},
		{"offset", model.TaskFilter{UserID: "u1", Offset: 1}, []string{"t2"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ListTasks(ctx, tc.filter)
			if err != nil {
				t.Fatalf("ListTasks() error: %v", err)
			}
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("ListTasks() returned %d tasks, want %d", len(got), len(tc.wantIDs))
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Errorf("ListTasks()[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestListSteps_CreationOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3"} {
		step := &model.ProjectStep{ID: id, ProjectID: "p1", Title: id, WeightPercentage: 10, Status: model.StepNotStarted}
		if err := s.CreateStep(ctx, step); err != nil {
			t.Fatalf("CreateStep(%s) error: %v", id, err)
		}
	}

	steps, err := s.ListSteps(ctx, "p1")
	if err != nil {
		t.Fatalf("ListSteps() error: %v", err)
	}
	if len(steps) != 3 {
		t.Fatalf("ListSteps() returned %d steps, want 3", len(steps))
	}
	for i, want := range []string{"s1", "s2", "s3"} {
		if steps[i].ID != want {
			t.Errorf("ListSteps()[%d].ID = %q, want %q", i, steps[i].ID, want)
		}
	}
}

func TestDeleteStepsByProject(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.CreateStep(ctx, &model.ProjectStep{ID: "s1", ProjectID: "p1", Title: "a", WeightPercentage: 50, Status: model.StepNotStarted})
	s.CreateStep(ctx, &model.ProjectStep{ID: "s2", ProjectID: "p2", Title: "b", WeightPercentage: 50, Status: model.StepNotStarted})

	if err := s.DeleteStepsByProject(ctx, "p1"); err != nil {
		t.Fatalf("DeleteStepsByProject() error: %v", err)
	}

	if _, err := s.GetStep(ctx, "s1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("step of deleted project still present, err = %v", err)
	}
	if _, err := s.GetStep(ctx, "s2"); err != nil {
		t.Errorf("step of other project was removed: %v", err)
	}
}

func TestReplaceConnections_ScopedToUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.ReplaceConnections(ctx, "u1", []*model.Connection{
		{ID: "c1", UserID: "u1", SourceID: "a", TargetID: "b", Strength: 0.7},
	})
	s.ReplaceConnections(ctx, "u2", []*model.Connection{
		{ID: "c2", UserID: "u2", SourceID: "x", TargetID: "y", Strength: 0.7},
	})

	// Replacing u1's set must not disturb u2's.
	if err := s.ReplaceConnections(ctx, "u1", []*model.Connection{
		{ID: "c3", UserID: "u1", SourceID: "a", TargetID: "c", Strength: 0.7},
	}); err != nil {
		t.Fatalf("ReplaceConnections() error: %v", err)
	}

	u1, _ := s.ListConnections(ctx, "u1")
	if len(u1) != 1 || u1[0].ID != "c3" {
		t.Errorf("u1 connections = %+v, want single c3", u1)
	}
	u2, _ := s.ListConnections(ctx, "u2")
	if len(u2) != 1 || u2[0].ID != "c2" {
		t.Errorf("u2 connections = %+v, want single c2", u2)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	now := time.Now().UTC()
	s.CreateProject(ctx, &model.Project{ID: "p1", UserID: "u1", Title: "persisted", CreatedAt: now, UpdatedAt: now})
	s.CreateStep(ctx, &model.ProjectStep{ID: "s1", ProjectID: "p1", Title: "step", WeightPercentage: 40, Status: model.StepDone, CreatedAt: now, UpdatedAt: now})
	s.Close()

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	p, err := reopened.GetProject(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProject() after reopen error: %v", err)
	}
	if p.Title != "persisted" {
		t.Errorf("Title = %q, want %q", p.Title, "persisted")
	}
	steps, _ := reopened.ListSteps(ctx, "p1")
	if len(steps) != 1 || steps[0].WeightPercentage != 40 {
		t.Errorf("steps after reopen = %+v, want one step with weight 40", steps)
	}
}

func TestOpen_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, fileProjects), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(dir)
	if err == nil {
		t.Fatal("Open() with corrupt file = nil error, want StorageError")
	}
	var se *store.StorageError
	if !errors.As(err, &se) {
		t.Errorf("Open() error = %T, want *store.StorageError", err)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.CreateProject(ctx, &model.Project{ID: "p1", UserID: "u1", Title: "original"})
	got, _ := s.GetProject(ctx, "p1")
	got.Title = "mutated"

	again, _ := s.GetProject(ctx, "p1")
	if again.Title != "original" {
		t.Errorf("store state mutated through returned pointer: Title = %q", again.Title)
	}
}
