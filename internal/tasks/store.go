package tasks

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no task matches the id.
var ErrNotFound = errors.New("task not found")

// Result is what a store operation hands back to the conversation layer.
// User-facing problems (bad enum value, bad date, unknown task) travel in
// Err; the Go error return of the store methods is reserved for unexpected
// failures such as a broken connection. List and Filter always set Tasks,
// even when empty, so the composer can tell "empty list" from "no list".
type Result struct {
	Success bool     `json:"success,omitempty"`
	Message string   `json:"message,omitempty"`
	Err     string   `json:"error,omitempty"`
	Task    *Task    `json:"task,omitempty"`
	Tasks   []Task   `json:"tasks,omitempty"`
	Count   int      `json:"count"`
	Filters *Filters `json:"filters,omitempty"`
}

// IsError reports whether the result carries a user-facing error.
func (r Result) IsError() bool { return r.Err != "" }

type CreateParams struct {
	Title       string
	Description string
	DueDate     string // YYYY-MM-DD, empty when absent
	Priority    string // defaults to medium when empty
	TimeHint    string // HH:MM, folded into the description
}

// UpdateParams identifies a task by TaskID or, failing that, by a fuzzy
// TitleMatch, and carries the new field values. Empty fields are left
// untouched downstream.
type UpdateParams struct {
	TaskID      int
	TitleMatch  string
	Title       string
	Description string
	Status      string
	DueDate     string
	Priority    string
}

type FilterParams struct {
	Status      string
	Priority    string
	DueDateFrom string
	DueDateTo   string
}

// Filters echoes the criteria a filter query was run with.
type Filters struct {
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
	DueDateFrom string `json:"due_date_from,omitempty"`
	DueDateTo   string `json:"due_date_to,omitempty"`
}

// Store is the persistence collaborator consumed by the conversation agent,
// the HTTP handlers and the MCP server. Implementations must be safe for
// concurrent use.
type Store interface {
	Create(ctx context.Context, p CreateParams) (Result, error)
	Update(ctx context.Context, p UpdateParams) (Result, error)
	Delete(ctx context.Context, taskID int, titleMatch string) (Result, error)
	List(ctx context.Context) (Result, error)
	Filter(ctx context.Context, p FilterParams) (Result, error)
	Get(ctx context.Context, id int) (Task, error)
}
