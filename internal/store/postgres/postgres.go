// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/aturzone/tasksphere/internal/model"
	"github.com/aturzone/tasksphere/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// --- Projects ---

func (s *PostgresStore) CreateProject(ctx context.Context, p *model.Project) error {
	return store.NewStorageError("create project", queryCreateProject(ctx, s.db, p))
}

func (s *PostgresStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	p, err := queryGetProject(ctx, s.db, id)
	if err != nil {
		return nil, wrapQueryErr("get project", err)
	}
	return p, nil
}

func (s *PostgresStore) ListProjects(ctx context.Context, filter model.ProjectFilter) ([]*model.Project, error) {
	ps, err := queryListProjects(ctx, s.db, filter)
	if err != nil {
		return nil, store.NewStorageError("list projects", err)
	}
	return ps, nil
}

func (s *PostgresStore) UpdateProject(ctx context.Context, p *model.Project) error {
	return wrapQueryErr("update project", queryUpdateProject(ctx, s.db, p))
}

func (s *PostgresStore) DeleteProject(ctx context.Context, id string) error {
	return wrapQueryErr("delete project", queryDeleteByID(ctx, s.db, "projects", id))
}

// --- Tasks ---

func (s *PostgresStore) CreateTask(ctx context.Context, t *model.Task) error {
	return store.NewStorageError("create task", queryCreateTask(ctx, s.db, t))
}

func (s *PostgresStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	t, err := queryGetTask(ctx, s.db, id)
	if err != nil {
		return nil, wrapQueryErr("get task", err)
	}
	return t, nil
}

func (s *PostgresStore) ListTasks(ctx context.Context, filter model.TaskFilter) ([]*model.Task, error) {
	ts, err := queryListTasks(ctx, s.db, filter)
	if err != nil {
		return nil, store.NewStorageError("list tasks", err)
	}
	return ts, nil
}

func (s *PostgresStore) UpdateTask(ctx context.Context, t *model.Task) error {
	return wrapQueryErr("update task", queryUpdateTask(ctx, s.db, t))
}

func (s *PostgresStore) DeleteTask(ctx context.Context, id string) error {
	return wrapQueryErr("delete task", queryDeleteByID(ctx, s.db, "tasks", id))
}

// --- Notes ---

func (s *PostgresStore) CreateNote(ctx context.Context, n *model.Note) error {
	return store.NewStorageError("create note", queryCreateNote(ctx, s.db, n))
}

func (s *PostgresStore) GetNote(ctx context.Context, id string) (*model.Note, error) {
	n, err := queryGetNote(ctx, s.db, id)
	if err != nil {
		return nil, wrapQueryErr("get note", err)
	}
	return n, nil
}

func (s *PostgresStore) ListNotes(ctx context.Context, filter model.NoteFilter) ([]*model.Note, error) {
	ns, err := queryListNotes(ctx, s.db, filter)
	if err != nil {
		return nil, store.NewStorageError("list notes", err)
	}
	return ns, nil
}

func (s *PostgresStore) UpdateNote(ctx context.Context, n *model.Note) error {
	return wrapQueryErr("update note", queryUpdateNote(ctx, s.db, n))
}

func (s *PostgresStore) DeleteNote(ctx context.Context, id string) error {
	return wrapQueryErr("delete note", queryDeleteByID(ctx, s.db, "notes", id))
}

// --- Steps ---

func (s *PostgresStore) CreateStep(ctx context.Context, step *model.ProjectStep) error {
	return store.NewStorageError("create step", queryCreateStep(ctx, s.db, step))
}

func (s *PostgresStore) GetStep(ctx context.Context, id string) (*model.ProjectStep, error) {
	step, err := queryGetStep(ctx, s.db, id)
	if err != nil {
		return nil, wrapQueryErr("get step", err)
	}
	return step, nil
}

func (s *PostgresStore) ListSteps(ctx context.Context, projectID string) ([]*model.ProjectStep, error) {
	steps, err := queryListSteps(ctx, s.db, projectID)
	if err != nil {
		return nil, store.NewStorageError("list steps", err)
	}
	return steps, nil
}

func (s *PostgresStore) UpdateStep(ctx context.Context, step *model.ProjectStep) error {
	return wrapQueryErr("update step", queryUpdateStep(ctx, s.db, step))
}

func (s *PostgresStore) DeleteStep(ctx context.Context, id string) error {
	return wrapQueryErr("delete step", queryDeleteByID(ctx, s.db, "project_steps", id))
}

func (s *PostgresStore) DeleteStepsByProject(ctx context.Context, projectID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM project_steps WHERE project_id = $1`, projectID)
	return store.NewStorageError("delete steps by project", err)
}

// --- Connections ---

func (s *PostgresStore) ListConnections(ctx context.Context, userID string) ([]*model.Connection, error) {
	conns, err := queryListConnections(ctx, s.db, userID)
	if err != nil {
		return nil, store.NewStorageError("list connections", err)
	}
	return conns, nil
}

// ReplaceConnections swaps a user's full connection set inside one
// transaction, so readers never observe a partially applied set.
func (s *PostgresStore) ReplaceConnections(ctx context.Context, userID string, conns []*model.Connection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.NewStorageError("replace connections", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM graph_connections WHERE user_id = $1`, userID); err != nil {
		return store.NewStorageError("replace connections", err)
	}
	for _, c := range conns {
		if err := queryCreateConnection(ctx, tx, c); err != nil {
			return store.NewStorageError("replace connections", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return store.NewStorageError("replace connections", err)
	}
	return nil
}

// wrapQueryErr maps sql.ErrNoRows to store.ErrNotFound and wraps anything
// else as a StorageError.
func wrapQueryErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	return store.NewStorageError(op, err)
}
