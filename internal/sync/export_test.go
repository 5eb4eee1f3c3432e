package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aturzone/tasksphere/internal/model"
	"github.com/aturzone/tasksphere/internal/store/jsonfile"
)

func newSeededStore(t *testing.T) *jsonfile.Store {
	t.Helper()
	st, err := jsonfile.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	p := &model.Project{ID: "ts-p1", UserID: "alice", Title: "Thesis", Color: "#10B981", CreatedAt: now, UpdatedAt: now}
	if err := st.CreateProject(ctx, p); err != nil {
		t.Fatalf("create project: %v", err)
	}
	task := &model.Task{ID: "ts-t1", UserID: "alice", Title: "Review draft", Status: model.TaskTodo, Priority: model.PriorityHigh, ProjectID: "ts-p1", CreatedAt: now, UpdatedAt: now}
	if err := st.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	note := &model.Note{ID: "ts-n1", UserID: "alice", Title: "Sources", Content: "see library", CreatedAt: now, UpdatedAt: now}
	if err := st.CreateNote(ctx, note); err != nil {
		t.Fatalf("create note: %v", err)
	}
	step := &model.ProjectStep{ID: "ts-s1", ProjectID: "ts-p1", Title: "Research", WeightPercentage: 40, Status: model.StepDone, CreatedAt: now, UpdatedAt: now}
	if err := st.CreateStep(ctx, step); err != nil {
		t.Fatalf("create step: %v", err)
	}
	conns := []*model.Connection{
		{ID: "ts-c1", UserID: "alice", SourceID: "ts-t1", TargetID: "ts-n1", Strength: 0.7, CreatedAt: now},
	}
	if err := st.ReplaceConnections(ctx, "alice", conns); err != nil {
		t.Fatalf("replace connections: %v", err)
	}
	return st
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func TestExportJSONL(t *testing.T) {
	st := newSeededStore(t)

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), st, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	// 1 header + 1 project + 1 task + 1 note + 1 step + 1 connection = 6
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), buf.String())
	}

	var hdr header
	if err := json.Unmarshal([]byte(lines[0]), &hdr); err != nil {
		t.Fatalf("decode header: %v", err)
	}
	if hdr.Type != "header" || hdr.Version != "1" {
		t.Errorf("unexpected header: %+v", hdr)
	}
	if hdr.ProjectCount != 1 || hdr.TaskCount != 1 || hdr.NoteCount != 1 || hdr.StepCount != 1 || hdr.ConnectionCount != 1 {
		t.Errorf("unexpected counts: %+v", hdr)
	}

	// Records carry a type discriminator.
	types := map[string]int{}
	for _, line := range lines[1:] {
		var rec record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("decode record: %v", err)
		}
		types[rec.Type]++
	}
	for _, typ := range []string{"project", "task", "note", "step", "connection"} {
		if types[typ] != 1 {
			t.Errorf("expected 1 %q record, got %d", typ, types[typ])
		}
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newSeededStore(t)

	var buf bytes.Buffer
	if err := ExportJSONL(ctx, src, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst, err := jsonfile.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open destination store: %v", err)
	}

	res, err := ImportJSONL(ctx, dst, &buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Projects != 1 || res.Tasks != 1 || res.Notes != 1 || res.Steps != 1 || res.Connections != 1 {
		t.Fatalf("unexpected import result: %+v", res)
	}

	p, err := dst.GetProject(ctx, "ts-p1")
	if err != nil {
		t.Fatalf("get restored project: %v", err)
	}
	if p.Title != "Thesis" || p.Color != "#10B981" {
		t.Errorf("restored project: %+v", p)
	}

	steps, err := dst.ListSteps(ctx, "ts-p1")
	if err != nil {
		t.Fatalf("list restored steps: %v", err)
	}
	if len(steps) != 1 || steps[0].WeightPercentage != 40 {
		t.Errorf("restored steps: %+v", steps)
	}

	conns, err := dst.ListConnections(ctx, "alice")
	if err != nil {
		t.Fatalf("list restored connections: %v", err)
	}
	if len(conns) != 1 || conns[0].SourceID != "ts-t1" {
		t.Errorf("restored connections: %+v", conns)
	}
}

func TestImportJSONL_UnknownType(t *testing.T) {
	dst, err := jsonfile.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	payload := `{"type":"widget","data":{}}` + "\n"
	if _, err := ImportJSONL(context.Background(), dst, strings.NewReader(payload)); err == nil {
		t.Fatal("expected error for unknown record type")
	}
}

func TestImportJSONL_MalformedLine(t *testing.T) {
	dst, err := jsonfile.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	payload := "not json\n"
	if _, err := ImportJSONL(context.Background(), dst, strings.NewReader(payload)); err == nil {
		t.Fatal("expected error for malformed line")
	}
}

func TestExportJSONL_EmptyStore(t *testing.T) {
	st, err := jsonfile.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), st, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	if len(lines) != 1 {
		t.Fatalf("expected just the header, got %d lines", len(lines))
	}
}
