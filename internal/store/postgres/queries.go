package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aturzone/tasksphere/internal/model"
)

// Column lists used for SELECT statements, kept in scan order.
const (
	projectColumns = `id, user_id, title, description, color, start_date, end_date,
	reminder_date, reminder_time, progress, steps, created_at, updated_at`

	taskColumns = `id, user_id, title, description, status, priority, project_id,
	due_date, start_time, end_time, reminder_date, reminder_time, created_at, updated_at`

	noteColumns = `id, user_id, title, content, project_id, note_date,
	reminder_date, reminder_time, created_at, updated_at`

	stepColumns = `id, project_id, title, description, weight_percentage, status,
	created_at, updated_at`

	connectionColumns = `id, user_id, source_id, target_id, strength, created_at`
)

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// --- Projects ---

func queryCreateProject(ctx context.Context, db executor, p *model.Project) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO projects (
			id, user_id, title, description, color, start_date, end_date,
			reminder_date, reminder_time, progress, steps, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13
		)`,
		p.ID,
		p.UserID,
		p.Title,
		p.Description,
		p.Color,
		nullTimePtr(p.StartDate),
		nullTimePtr(p.EndDate),
		nullTimePtr(p.ReminderDate),
		p.ReminderTime,
		p.Progress,
		stepsSnapshotJSON(p.Steps),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func queryGetProject(ctx context.Context, db executor, id string) (*model.Project, error) {
	row := db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

func queryListProjects(ctx context.Context, db executor, filter model.ProjectFilter) ([]*model.Project, error) {
	qb := newQueryBuilder()
	if filter.UserID != "" {
		qb.where("user_id = "+qb.arg(), filter.UserID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		ph := qb.arg()
		qb.where("(title ILIKE "+ph+" OR description ILIKE "+ph+")", pattern)
	}

	query := `SELECT ` + projectColumns + ` FROM projects` + qb.clause() +
		orderClause(filter.Sort, map[string]string{"title": "title", "updated_at": "updated_at"}) +
		limitOffset(filter.Limit, filter.Offset)

	rows, err := db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func queryUpdateProject(ctx context.Context, db executor, p *model.Project) error {
	res, err := db.ExecContext(ctx, `
		UPDATE projects SET
			title = $2, description = $3, color = $4, start_date = $5, end_date = $6,
			reminder_date = $7, reminder_time = $8, progress = $9, steps = $10, updated_at = $11
		WHERE id = $1`,
		p.ID,
		p.Title,
		p.Description,
		p.Color,
		nullTimePtr(p.StartDate),
		nullTimePtr(p.EndDate),
		nullTimePtr(p.ReminderDate),
		p.ReminderTime,
		p.Progress,
		stepsSnapshotJSON(p.Steps),
		p.UpdatedAt,
	)
	return checkAffected(res, err)
}

// --- Tasks ---

func queryCreateTask(ctx context.Context, db executor, t *model.Task) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, user_id, title, description, status, priority, project_id,
			due_date, start_time, end_time, reminder_date, reminder_time, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14
		)`,
		t.ID,
		t.UserID,
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		nullString(t.ProjectID),
		nullTimePtr(t.DueDate),
		t.StartTime,
		t.EndTime,
		nullTimePtr(t.ReminderDate),
		t.ReminderTime,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func queryGetTask(ctx context.Context, db executor, id string) (*model.Task, error) {
	row := db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

func queryListTasks(ctx context.Context, db executor, filter model.TaskFilter) ([]*model.Task, error) {
	qb := newQueryBuilder()
	if filter.UserID != "" {
		qb.where("user_id = "+qb.arg(), filter.UserID)
	}
	if filter.ProjectID != "" {
		qb.where("project_id = "+qb.arg(), filter.ProjectID)
	}
	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, st := range filter.Status {
			placeholders[i] = qb.arg()
			qb.args = append(qb.args, string(st))
		}
		qb.whereRaw("status IN (" + strings.Join(placeholders, ", ") + ")")
	}
	if len(filter.Priority) > 0 {
		placeholders := make([]string, len(filter.Priority))
		for i, pr := range filter.Priority {
			placeholders[i] = qb.arg()
			qb.args = append(qb.args, string(pr))
		}
		qb.whereRaw("priority IN (" + strings.Join(placeholders, ", ") + ")")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		ph := qb.arg()
		qb.where("(title ILIKE "+ph+" OR description ILIKE "+ph+")", pattern)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks` + qb.clause() +
		orderClause(filter.Sort, map[string]string{
			"title": "title", "updated_at": "updated_at", "due_date": "due_date", "priority": "priority",
		}) +
		limitOffset(filter.Limit, filter.Offset)

	rows, err := db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func queryUpdateTask(ctx context.Context, db executor, t *model.Task) error {
	res, err := db.ExecContext(ctx, `
		UPDATE tasks SET
			title = $2, description = $3, status = $4, priority = $5, project_id = $6,
			due_date = $7, start_time = $8, end_time = $9, reminder_date = $10,
			reminder_time = $11, updated_at = $12
		WHERE id = $1`,
		t.ID,
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		nullString(t.ProjectID),
		nullTimePtr(t.DueDate),
		t.StartTime,
		t.EndTime,
		nullTimePtr(t.ReminderDate),
		t.ReminderTime,
		t.UpdatedAt,
	)
	return checkAffected(res, err)
}

// --- Notes ---

func queryCreateNote(ctx context.Context, db executor, n *model.Note) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO notes (
			id, user_id, title, content, project_id, note_date,
			reminder_date, reminder_time, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10
		)`,
		n.ID,
		n.UserID,
		n.Title,
		n.Content,
		nullString(n.ProjectID),
		nullTimePtr(n.NoteDate),
		nullTimePtr(n.ReminderDate),
		n.ReminderTime,
		n.CreatedAt,
		n.UpdatedAt,
	)
	return err
}

func queryGetNote(ctx context.Context, db executor, id string) (*model.Note, error) {
	row := db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id)
	return scanNote(row)
}

func queryListNotes(ctx context.Context, db executor, filter model.NoteFilter) ([]*model.Note, error) {
	qb := newQueryBuilder()
	if filter.UserID != "" {
		qb.where("user_id = "+qb.arg(), filter.UserID)
	}
	if filter.ProjectID != "" {
		qb.where("project_id = "+qb.arg(), filter.ProjectID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		ph := qb.arg()
		qb.where("(title ILIKE "+ph+" OR content ILIKE "+ph+")", pattern)
	}

	query := `SELECT ` + noteColumns + ` FROM notes` + qb.clause() +
		orderClause(filter.Sort, map[string]string{"title": "title", "updated_at": "updated_at"}) +
		limitOffset(filter.Limit, filter.Offset)

	rows, err := db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func queryUpdateNote(ctx context.Context, db executor, n *model.Note) error {
	res, err := db.ExecContext(ctx, `
		UPDATE notes SET
			title = $2, content = $3, project_id = $4, note_date = $5,
			reminder_date = $6, reminder_time = $7, updated_at = $8
		WHERE id = $1`,
		n.ID,
		n.Title,
		n.Content,
		nullString(n.ProjectID),
		nullTimePtr(n.NoteDate),
		nullTimePtr(n.ReminderDate),
		n.ReminderTime,
		n.UpdatedAt,
	)
	return checkAffected(res, err)
}

// --- Steps ---

func queryCreateStep(ctx context.Context, db executor, s *model.ProjectStep) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO project_steps (
			id, project_id, title, description, weight_percentage, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)`,
		s.ID,
		s.ProjectID,
		s.Title,
		s.Description,
		s.WeightPercentage,
		string(s.Status),
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func queryGetStep(ctx context.Context, db executor, id string) (*model.ProjectStep, error) {
	row := db.QueryRowContext(ctx, `SELECT `+stepColumns+` FROM project_steps WHERE id = $1`, id)
	return scanStep(row)
}

func queryListSteps(ctx context.Context, db executor, projectID string) ([]*model.ProjectStep, error) {
	// created_at ordering preserves creation order across backends.
	rows, err := db.QueryContext(ctx,
		`SELECT `+stepColumns+` FROM project_steps WHERE project_id = $1 ORDER BY created_at, id`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []*model.ProjectStep
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}

func queryUpdateStep(ctx context.Context, db executor, s *model.ProjectStep) error {
	res, err := db.ExecContext(ctx, `
		UPDATE project_steps SET
			title = $2, description = $3, weight_percentage = $4, status = $5, updated_at = $6
		WHERE id = $1`,
		s.ID,
		s.Title,
		s.Description,
		s.WeightPercentage,
		string(s.Status),
		s.UpdatedAt,
	)
	return checkAffected(res, err)
}

// --- Connections ---

func queryCreateConnection(ctx context.Context, db executor, c *model.Connection) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO graph_connections (
			id, user_id, source_id, target_id, strength, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)`,
		c.ID,
		c.UserID,
		c.SourceID,
		c.TargetID,
		c.Strength,
		c.CreatedAt,
	)
	return err
}

func queryListConnections(ctx context.Context, db executor, userID string) ([]*model.Connection, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+connectionColumns+` FROM graph_connections WHERE user_id = $1 ORDER BY created_at, id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []*model.Connection
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		conns = append(conns, c)
	}
	return conns, rows.Err()
}

// --- shared ---

func queryDeleteByID(ctx context.Context, db executor, table, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	return checkAffected(res, err)
}

// checkAffected converts a zero-row UPDATE/DELETE into sql.ErrNoRows so the
// caller can map it to store.ErrNotFound.
func checkAffected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// queryBuilder accumulates WHERE clauses with positional placeholders.
type queryBuilder struct {
	clauses []string
	args    []any
	argIdx  int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{}
}

// arg returns the next positional placeholder ($1, $2, ...).
func (qb *queryBuilder) arg() string {
	qb.argIdx++
	return fmt.Sprintf("$%d", qb.argIdx)
}

func (qb *queryBuilder) where(clause string, args ...any) {
	qb.clauses = append(qb.clauses, clause)
	qb.args = append(qb.args, args...)
}

// whereRaw appends a clause whose args were already added via arg().
func (qb *queryBuilder) whereRaw(clause string) {
	qb.clauses = append(qb.clauses, clause)
}

func (qb *queryBuilder) clause() string {
	if len(qb.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(qb.clauses, " AND ")
}

// orderClause builds an ORDER BY from a sort expression ("-field" =
// descending), restricted to the allowed column map. Unknown or empty sorts
// fall back to creation order.
func orderClause(sortExpr string, allowed map[string]string) string {
	desc := false
	if strings.HasPrefix(sortExpr, "-") {
		desc = true
		sortExpr = sortExpr[1:]
	}
	col, ok := allowed[sortExpr]
	if !ok {
		col = "created_at"
	}
	clause := " ORDER BY " + col
	if desc {
		clause += " DESC"
	}
	return clause + ", id"
}

func limitOffset(limit, offset int) string {
	var b strings.Builder
	if limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", limit)
	}
	if offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", offset)
	}
	return b.String()
}
