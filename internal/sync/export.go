package sync

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/aturzone/tasksphere/internal/model"
	"github.com/aturzone/tasksphere/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version         string    `json:"version"`
	Type            string    `json:"type"`
	Timestamp       time.Time `json:"timestamp"`
	ProjectCount    int       `json:"project_count"`
	TaskCount       int       `json:"task_count"`
	NoteCount       int       `json:"note_count"`
	StepCount       int       `json:"step_count"`
	ConnectionCount int       `json:"connection_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func encodeRecord(enc *json.Encoder, typ string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return enc.Encode(record{Type: typ, Data: raw})
}

// ExportJSONL writes every collection from the store as JSONL to w: one
// header record followed by typed records for projects, tasks, notes, steps,
// and connections. Records are sorted by ID for stable diffs.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	projects, err := s.ListProjects(ctx, model.ProjectFilter{})
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	tasks, err := s.ListTasks(ctx, model.TaskFilter{})
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	notes, err := s.ListNotes(ctx, model.NoteFilter{})
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}

	var steps []*model.ProjectStep
	for _, p := range projects {
		ps, err := s.ListSteps(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("list steps for %s: %w", p.ID, err)
		}
		steps = append(steps, ps...)
	}

	// Connections are stored per user; walk the user ids seen on entities.
	userSet := map[string]bool{}
	for _, p := range projects {
		userSet[p.UserID] = true
	}
	for _, t := range tasks {
		userSet[t.UserID] = true
	}
	for _, n := range notes {
		userSet[n.UserID] = true
	}
	var conns []*model.Connection
	for userID := range userSet {
		cs, err := s.ListConnections(ctx, userID)
		if err != nil {
			return fmt.Errorf("list connections for %s: %w", userID, err)
		}
		conns = append(conns, cs...)
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	sort.Slice(steps, func(i, j int) bool { return steps[i].ID < steps[j].ID })
	sort.Slice(conns, func(i, j int) bool { return conns[i].ID < conns[j].ID })

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:         "1",
		Type:            "header",
		Timestamp:       time.Now().UTC(),
		ProjectCount:    len(projects),
		TaskCount:       len(tasks),
		NoteCount:       len(notes),
		StepCount:       len(steps),
		ConnectionCount: len(conns),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, p := range projects {
		if err := encodeRecord(enc, "project", p); err != nil {
			return fmt.Errorf("encode project %s: %w", p.ID, err)
		}
	}
	for _, t := range tasks {
		if err := encodeRecord(enc, "task", t); err != nil {
			return fmt.Errorf("encode task %s: %w", t.ID, err)
		}
	}
	for _, n := range notes {
		if err := encodeRecord(enc, "note", n); err != nil {
			return fmt.Errorf("encode note %s: %w", n.ID, err)
		}
	}
	for _, s := range steps {
		if err := encodeRecord(enc, "step", s); err != nil {
			return fmt.Errorf("encode step %s: %w", s.ID, err)
		}
	}
	for _, c := range conns {
		if err := encodeRecord(enc, "connection", c); err != nil {
			return fmt.Errorf("encode connection %s: %w", c.ID, err)
		}
	}

	return nil
}

// ImportResult summarizes what an ImportJSONL call restored.
type ImportResult struct {
	Projects    int `json:"projects"`
	Tasks       int `json:"tasks"`
	Notes       int `json:"notes"`
	Steps       int `json:"steps"`
	Connections int `json:"connections"`
}

// ImportJSONL replays a JSONL backup into the store. Entities are created in
// collection order; connections are grouped per user and applied with a
// single replace-all write each.
func ImportJSONL(ctx context.Context, s store.Store, r io.Reader) (*ImportResult, error) {
	res := &ImportResult{}
	connsByUser := map[string][]*model.Connection{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		switch rec.Type {
		case "header":
			// Counts are informational; nothing to restore.
		case "project":
			var p model.Project
			if err := json.Unmarshal(rec.Data, &p); err != nil {
				return nil, fmt.Errorf("line %d: decode project: %w", line, err)
			}
			if err := s.CreateProject(ctx, &p); err != nil {
				return nil, fmt.Errorf("line %d: create project %s: %w", line, p.ID, err)
			}
			res.Projects++
		case "task":
			var t model.Task
			if err := json.Unmarshal(rec.Data, &t); err != nil {
				return nil, fmt.Errorf("line %d: decode task: %w", line, err)
			}
			if err := s.CreateTask(ctx, &t); err != nil {
				return nil, fmt.Errorf("line %d: create task %s: %w", line, t.ID, err)
			}
			res.Tasks++
		case "note":
			var n model.Note
			if err := json.Unmarshal(rec.Data, &n); err != nil {
				return nil, fmt.Errorf("line %d: decode note: %w", line, err)
			}
			if err := s.CreateNote(ctx, &n); err != nil {
				return nil, fmt.Errorf("line %d: create note %s: %w", line, n.ID, err)
			}
			res.Notes++
		case "step":
			var st model.ProjectStep
			if err := json.Unmarshal(rec.Data, &st); err != nil {
				return nil, fmt.Errorf("line %d: decode step: %w", line, err)
			}
			if err := s.CreateStep(ctx, &st); err != nil {
				return nil, fmt.Errorf("line %d: create step %s: %w", line, st.ID, err)
			}
			res.Steps++
		case "connection":
			var c model.Connection
			if err := json.Unmarshal(rec.Data, &c); err != nil {
				return nil, fmt.Errorf("line %d: decode connection: %w", line, err)
			}
			connsByUser[c.UserID] = append(connsByUser[c.UserID], &c)
		default:
			return nil, fmt.Errorf("line %d: unknown record type %q", line, rec.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	for userID, conns := range connsByUser {
		if err := s.ReplaceConnections(ctx, userID, conns); err != nil {
			return nil, fmt.Errorf("restore connections for %s: %w", userID, err)
		}
		res.Connections += len(conns)
	}

	return res, nil
}
