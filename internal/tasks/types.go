package tasks

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    Priority   `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ValidStatus reports whether s (lower-cased beforehand) is a known status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch Priority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func invalidStatusResult() Result {
	return Result{Err: fmt.Sprintf("Invalid status. Must be one of: %s, %s, %s, %s",
		StatusPending, StatusInProgress, StatusCompleted, StatusCancelled)}
}

func invalidPriorityResult() Result {
	return Result{Err: fmt.Sprintf("Invalid priority. Must be one of: %s, %s, %s, %s",
		PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent)}
}

// ParseDate accepts a plain calendar date or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
