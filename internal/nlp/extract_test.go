package nlp

import (
	"testing"
	"time"
)

func TestExtractTitlePatternOrder(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"add a task: water the plants by friday", "water the plants"},
		{"finish the report by friday", "the report"},
		{"remind me to buy milk tomorrow", "buy milk"},
		{"i need to call the dentist next week", "call the dentist"},
		{"task: clean the garage", "clean the garage"},
		{"create a task called pay rent", "pay rent"},
		{"buy groceries tomorrow", "groceries"},
	}
	for _, c := range cases {
		if got := ExtractTitle(c.in); got != c.want {
			t.Fatalf("ExtractTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractTitleFallback(t *testing.T) {
	if got := ExtractTitle("one two three four five six"); got != "one two three four" {
		t.Fatalf("long fallback: got %q", got)
	}
	if got := ExtractTitle("walk dog"); got != "walk dog" {
		t.Fatalf("short fallback: got %q", got)
	}
}

func TestExtractDescription(t *testing.T) {
	got, ok := ExtractDescription("add a task: report description: quarterly numbers due tomorrow")
	if !ok || got != "quarterly numbers" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	if _, ok := ExtractDescription("buy milk"); ok {
		t.Fatalf("expected no description")
	}
}

func TestExtractDueDateWeekdayIsStrictlyFuture(t *testing.T) {
	// A Friday. "by friday" must land a full week out, never today.
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	if now.Weekday() != time.Friday {
		t.Fatalf("fixture is not a Friday")
	}
	got, ok := extractDueDateAt("finish the report by friday", now)
	if !ok || got != "2026-09-04" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	// Every weekday resolves within (0, 7] days, landing on that weekday.
	for name, idx := range weekdayIndex {
		got, ok := extractDueDateAt("by "+name, now)
		if !ok {
			t.Fatalf("no date for %q", name)
		}
		d, err := time.Parse("2006-01-02", got)
		if err != nil {
			t.Fatalf("bad date %q: %v", got, err)
		}
		ahead := int(d.Sub(now.Truncate(24*time.Hour)).Hours() / 24)
		if ahead <= 0 || ahead > 7 {
			t.Fatalf("%s resolved %d days ahead", name, ahead)
		}
		if (int(d.Weekday())+6)%7 != idx {
			t.Fatalf("%s resolved to %s", name, d.Weekday())
		}
	}
}

func TestExtractDueDateRelativeAndExplicit(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want string
	}{
		{"by tomorrow", "2026-08-31"},
		{"do it tomorrow", "2026-08-31"},
		{"due today", "2026-08-30"},
		{"next week", "2026-09-06"},
		{"due 2026-12-24", "2026-12-24"},
		{"due 3/14/2027", "3/14/2027"},
	}
	for _, c := range cases {
		got, ok := extractDueDateAt(c.in, now)
		if !ok || got != c.want {
			t.Fatalf("extractDueDateAt(%q) = %q ok=%v, want %q", c.in, got, ok, c.want)
		}
	}
	if _, ok := extractDueDateAt("buy milk", now); ok {
		t.Fatalf("expected no due date")
	}
}

func TestExtractTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"at 19:30", "19:30"},
		{"by 7:15 pm", "19:15"},
		{"at 12:05 am", "00:05"},
		{"at 7pm", "19:00"},
		{"at 12am", "00:00"},
		{"call mom in the evening", "18:00"},
		{"tomorrow morning", "09:00"},
	}
	for _, c := range cases {
		got, ok := ExtractTime(c.in)
		if !ok || got != c.want {
			t.Fatalf("ExtractTime(%q) = %q ok=%v, want %q", c.in, got, ok, c.want)
		}
	}
	if _, ok := ExtractTime("buy milk"); ok {
		t.Fatalf("expected no time")
	}
}

func TestExtractPriorityNeverAbsent(t *testing.T) {
	if got := ExtractPriority("this is URGENT"); got != "urgent" {
		t.Fatalf("got %q", got)
	}
	if got := ExtractPriority("important meeting prep"); got != "high" {
		t.Fatalf("got %q", got)
	}
	if got := ExtractPriority("buy milk"); got != "medium" {
		t.Fatalf("default: got %q", got)
	}
	// "urgent" row sits before "critical" in the table.
	if got := ExtractPriority("critical and urgent"); got != "urgent" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"mark task 3 as completed", "completed"},
		{"it is done", "completed"},
		{"task is in progress", "in_progress"},
		{"i started it", "in_progress"},
		{"still pending", "pending"},
		{"it was canceled", "cancelled"},
	}
	for _, c := range cases {
		got, ok := ExtractStatus(c.in)
		if !ok || got != c.want {
			t.Fatalf("ExtractStatus(%q) = %q ok=%v, want %q", c.in, got, ok, c.want)
		}
	}
	if _, ok := ExtractStatus("buy milk"); ok {
		t.Fatalf("expected no status")
	}
}

func TestExtractTaskID(t *testing.T) {
	if id, ok := ExtractTaskID("mark task 3 as completed"); !ok || id != 3 {
		t.Fatalf("got %d ok=%v", id, ok)
	}
	if id, ok := ExtractTaskID("delete task #12"); !ok || id != 12 {
		t.Fatalf("got %d ok=%v", id, ok)
	}
	if _, ok := ExtractTaskID("delete the grocery task"); ok {
		t.Fatalf("expected no id")
	}
}

func TestExtractTaskTitle(t *testing.T) {
	got, ok := ExtractTaskTitle("mark the task buy groceries as completed")
	if !ok || got != "buy groceries" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	if _, ok := ExtractTaskTitle("hello there"); ok {
		t.Fatalf("expected no match")
	}
}

func TestExtractorsAreIdempotent(t *testing.T) {
	in := "remind me to buy milk tomorrow at 7pm, it's urgent"
	if ExtractTitle(in) != ExtractTitle(in) {
		t.Fatalf("title not stable")
	}
	a, _ := ExtractTime(in)
	b, _ := ExtractTime(in)
	if a != b {
		t.Fatalf("time not stable")
	}
	if ExtractPriority(in) != ExtractPriority(in) {
		t.Fatalf("priority not stable")
	}
}
