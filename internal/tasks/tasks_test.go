package tasks

import (
	"testing"
	"time"
)

func TestFoldTimeHint(t *testing.T) {
	cases := []struct {
		description string
		timeHint    string
		want        string
	}{
		{"", "", ""},
		{"bring the receipts", "", "bring the receipts"},
		{"", "19:00", "time: 19:00"},
		{"bring the receipts", "19:00", "bring the receipts | time: 19:00"},
	}
	for _, c := range cases {
		if got := foldTimeHint(c.description, c.timeHint); got != c.want {
			t.Errorf("foldTimeHint(%q, %q) = %q, want %q", c.description, c.timeHint, got, c.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-04")
	if err != nil {
		t.Fatalf("plain date: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.September || d.Day() != 4 {
		t.Fatalf("plain date parsed as %v", d)
	}

	d, err = ParseDate("2026-09-04T18:30:00Z")
	if err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if d.Hour() != 18 || d.Minute() != 30 {
		t.Fatalf("rfc3339 parsed as %v", d)
	}

	if _, err := ParseDate("next friday"); err == nil {
		t.Fatal("expected an error for free-form text")
	}
}

func TestValidEnums(t *testing.T) {
	for _, s := range []string{"pending", "in_progress", "completed", "cancelled"} {
		if !ValidStatus(s) {
			t.Errorf("status %q should be valid", s)
		}
	}
	if ValidStatus("canceled") || ValidStatus("") {
		t.Error("unknown statuses must be rejected")
	}

	for _, p := range []string{"low", "medium", "high", "urgent"} {
		if !ValidPriority(p) {
			t.Errorf("priority %q should be valid", p)
		}
	}
	if ValidPriority("critical") || ValidPriority("") {
		t.Error("unknown priorities must be rejected")
	}
}

func TestResultIsError(t *testing.T) {
	if (Result{Success: true}).IsError() {
		t.Error("success result must not read as error")
	}
	r := invalidPriorityResult()
	if !r.IsError() {
		t.Error("validation result must read as error")
	}
	if r.Err != "Invalid priority. Must be one of: low, medium, high, urgent" {
		t.Errorf("unexpected message: %q", r.Err)
	}
}
