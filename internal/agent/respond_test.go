package agent

import (
	"strings"
	"testing"
	"time"

	"taskchat/internal/tasks"
)

func TestFormatResultDetailBlockEchoesTaskFields(t *testing.T) {
	due := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	r := tasks.Result{
		Success: true,
		Message: "Task 'the report' created successfully",
		Task: &tasks.Task{
			ID:       7,
			Title:    "the report",
			Status:   tasks.StatusPending,
			Priority: tasks.PriorityHigh,
			DueDate:  &due,
		},
	}
	out := FormatResult(r)
	for _, want := range []string{
		"Task 'the report' created successfully",
		"📋 Task Details:",
		"• ID: 7",
		"• Title: the report",
		"• Status: pending",
		"• Priority: high",
		"• Due Date: 2026-09-04",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatResultListFormatting(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	r := tasks.Result{
		Success: true,
		Tasks: []tasks.Task{
			{ID: 1, Title: "buy milk", Status: tasks.StatusPending, Priority: tasks.PriorityMedium, DueDate: &due},
			{ID: 2, Title: "pay rent", Status: tasks.StatusCompleted, Priority: tasks.PriorityUrgent},
		},
		Count: 2,
	}
	out := FormatResult(r)
	if !strings.HasPrefix(out, "📝 Found 2 task(s):\n\n") {
		t.Fatalf("missing count header: %q", out)
	}
	if !strings.Contains(out, "• buy milk (ID: 1, Status: pending, Priority: medium)") {
		t.Fatalf("missing task line: %q", out)
	}
	if !strings.Contains(out, "  📅 Due: 2026-09-01") {
		t.Fatalf("missing due line: %q", out)
	}
	if strings.Count(out, "📅 Due:") != 1 {
		t.Fatalf("due line must only appear for dated tasks: %q", out)
	}
}

func TestFormatResultErrorVerbatim(t *testing.T) {
	if got := FormatResult(tasks.Result{Err: "Task not found"}); got != "Task not found" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatResultGenericFallback(t *testing.T) {
	if got := FormatResult(tasks.Result{}); got != "I'm here to help you manage your tasks! 😊" {
		t.Fatalf("got %q", got)
	}
}
