package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

const taskColumns = "id, title, description, status, due_date, priority, created_at, updated_at"

// Connect opens a Postgres connection and verifies it with a ping.
func Connect(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// PostgresStore implements Store on top of database/sql.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the tasks table if it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS tasks (
			id          SERIAL PRIMARY KEY,
			title       VARCHAR(255) NOT NULL,
			description TEXT,
			status      VARCHAR(20)  NOT NULL DEFAULT 'pending',
			due_date    TIMESTAMP,
			priority    VARCHAR(10)  NOT NULL DEFAULT 'medium',
			created_at  TIMESTAMP    NOT NULL DEFAULT now(),
			updated_at  TIMESTAMP    NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure tasks table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, p CreateParams) (Result, error) {
	var due *time.Time
	if p.DueDate != "" {
		d, err := ParseDate(p.DueDate)
		if err != nil {
			return Result{Err: "Invalid date format. Use YYYY-MM-DD format."}, nil
		}
		due = &d
	}

	priority := strings.ToLower(p.Priority)
	if priority == "" {
		priority = string(PriorityMedium)
	}
	if !ValidPriority(priority) {
		return invalidPriorityResult(), nil
	}

	description := foldTimeHint(p.Description, p.TimeHint)

	var t Task
	t.Title = p.Title
	t.Priority = Priority(priority)
	t.DueDate = due
	if description != "" {
		t.Description = description
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (title, description, due_date, priority)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING id, status, created_at, updated_at`,
		p.Title, description, due, priority)
	if err := row.Scan(&t.ID, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Result{}, fmt.Errorf("insert task: %w", err)
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Task '%s' created successfully", p.Title),
		Task:    &t,
	}, nil
}

func (s *PostgresStore) Update(ctx context.Context, p UpdateParams) (Result, error) {
	t, err := s.find(ctx, p.TaskID, p.TitleMatch)
	if err != nil {
		if err == ErrNotFound {
			return Result{Err: "Task not found"}, nil
		}
		return Result{}, err
	}

	set := []string{"updated_at = now()"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if p.Title != "" {
		set = append(set, "title = "+arg(p.Title))
	}
	if p.Description != "" {
		set = append(set, "description = "+arg(p.Description))
	}
	if p.Status != "" {
		status := strings.ToLower(p.Status)
		if !ValidStatus(status) {
			return invalidStatusResult(), nil
		}
		set = append(set, "status = "+arg(status))
	}
	if p.DueDate != "" {
		d, err := ParseDate(p.DueDate)
		if err != nil {
			return Result{Err: "Invalid date format. Use YYYY-MM-DD format."}, nil
		}
		set = append(set, "due_date = "+arg(d))
	}
	if p.Priority != "" {
		priority := strings.ToLower(p.Priority)
		if !ValidPriority(priority) {
			return invalidPriorityResult(), nil
		}
		set = append(set, "priority = "+arg(priority))
	}

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = %s RETURNING %s",
		strings.Join(set, ", "), arg(t.ID), taskColumns)
	updated, err := scanTaskRow(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return Result{}, fmt.Errorf("update task: %w", err)
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Task '%s' updated successfully", updated.Title),
		Task:    &updated,
	}, nil
}

func (s *PostgresStore) Delete(ctx context.Context, taskID int, titleMatch string) (Result, error) {
	t, err := s.find(ctx, taskID, titleMatch)
	if err != nil {
		if err == ErrNotFound {
			return Result{Err: "Task not found"}, nil
		}
		return Result{}, err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", t.ID); err != nil {
		return Result{}, fmt.Errorf("delete task: %w", err)
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Task '%s' deleted successfully", t.Title),
	}, nil
}

func (s *PostgresStore) List(ctx context.Context) (Result, error) {
	ts, err := s.queryTasks(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY created_at DESC")
	if err != nil {
		return Result{}, err
	}
	return Result{Success: true, Tasks: ts, Count: len(ts)}, nil
}

func (s *PostgresStore) Filter(ctx context.Context, p FilterParams) (Result, error) {
	where := []string{}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if p.Status != "" {
		status := strings.ToLower(p.Status)
		if !ValidStatus(status) {
			return invalidStatusResult(), nil
		}
		where = append(where, "status = "+arg(status))
	}
	if p.Priority != "" {
		priority := strings.ToLower(p.Priority)
		if !ValidPriority(priority) {
			return invalidPriorityResult(), nil
		}
		where = append(where, "priority = "+arg(priority))
	}
	if p.DueDateFrom != "" {
		d, err := ParseDate(p.DueDateFrom)
		if err != nil {
			return Result{Err: "Invalid due_date_from format. Use YYYY-MM-DD format."}, nil
		}
		where = append(where, "due_date >= "+arg(d))
	}
	if p.DueDateTo != "" {
		d, err := ParseDate(p.DueDateTo)
		if err != nil {
			return Result{Err: "Invalid due_date_to format. Use YYYY-MM-DD format."}, nil
		}
		where = append(where, "due_date <= "+arg(d))
	}

	query := "SELECT " + taskColumns + " FROM tasks"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	ts, err := s.queryTasks(ctx, query, args...)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Success: true,
		Tasks:   ts,
		Count:   len(ts),
		Filters: &Filters{
			Status:      p.Status,
			Priority:    p.Priority,
			DueDateFrom: p.DueDateFrom,
			DueDateTo:   p.DueDateTo,
		},
	}, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int) (Task, error) {
	return s.find(ctx, id, "")
}

// find locates a task by id or, when id is zero, by a case-insensitive
// substring match on the title.
func (s *PostgresStore) find(ctx context.Context, id int, titleMatch string) (Task, error) {
	var row *sql.Row
	switch {
	case id != 0:
		row = s.db.QueryRowContext(ctx,
			"SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)
	case titleMatch != "":
		row = s.db.QueryRowContext(ctx,
			"SELECT "+taskColumns+" FROM tasks WHERE title ILIKE '%' || $1 || '%' ORDER BY id LIMIT 1",
			titleMatch)
	default:
		return Task{}, ErrNotFound
	}

	t, err := scanTaskRow(row)
	if err == sql.ErrNoRows {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, fmt.Errorf("find task: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) queryTasks(ctx context.Context, query string, args ...interface{}) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]Task, 0)
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// foldTimeHint carries a clock time inside the description text; the
// schema has no separate time column.
func foldTimeHint(description, timeHint string) string {
	if timeHint == "" {
		return description
	}
	if description == "" {
		return "time: " + timeHint
	}
	return description + " | time: " + timeHint
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTaskRow(r rowScanner) (Task, error) {
	var t Task
	var description sql.NullString
	var due sql.NullTime
	if err := r.Scan(&t.ID, &t.Title, &description, &t.Status, &due, &t.Priority, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Task{}, err
	}
	if description.Valid {
		t.Description = description.String
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	return t, nil
}
