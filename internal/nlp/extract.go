// Package nlp turns free-form chat text into typed task fields and an
// intent. Everything here is pure: same input, same output, no I/O. The
// pattern tables are ordered and the order is part of the behavior — the
// first match always wins, so do not reorder them.
package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Title patterns, tried top to bottom. Each captures the title up to a
// boundary keyword (by/due/tomorrow/...) or the end of input.
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)add a task:\s*(.+?)(?:\s+(?:by|due|tomorrow|today|next week|priority|description)|$)`),
	regexp.MustCompile(`(?i)finish (.+?)\s+by\s+(.+?)(?:\s|$)`),
	regexp.MustCompile(`(?i)remind me to (.+?)(?:\s+(?:tomorrow|today|next week|due|priority|description)|$)`),
	regexp.MustCompile(`(?i)(?:i\s+)?(?:have|need|must|should|want)\s+to\s+(.+?)(?:\s+(?:by|due|tomorrow|today|next week|priority|description)|$)`),
	regexp.MustCompile(`(?i)task:\s*(.+?)(?:\s+(?:description|due|priority)|$)`),
	regexp.MustCompile(`(?i)create a task (?:called|named|to)?\s*(.+?)(?:\s+(?:description|due|priority)|$)`),
	regexp.MustCompile(`(?i)buy (.+?)(?:\s+(?:tomorrow|today|next week|due|priority|description)|$)`),
}

// ExtractTitle pulls a task title out of the input. When no pattern
// matches it falls back to the first four words, or the whole input for
// short messages.
func ExtractTitle(input string) string {
	if t, ok := ExtractTitlePattern(input); ok {
		return t
	}
	words := strings.Fields(input)
	if len(words) > 3 {
		return strings.Join(words[:4], " ")
	}
	return input
}

// ExtractTitlePattern is ExtractTitle without the word fallback. Update
// flows use it so a message like "mark task 3 as completed" does not
// overwrite the stored title with its own leading words.
func ExtractTitlePattern(input string) (string, bool) {
	for _, re := range titlePatterns {
		if m := re.FindStringSubmatch(input); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

var descriptionRe = regexp.MustCompile(`(?i)description:\s*(.+?)(?:\s+(?:due|priority)|$)`)

func ExtractDescription(input string) (string, bool) {
	if m := descriptionRe.FindStringSubmatch(input); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// Monday-based weekday indexes, matching the day names in weekdayRe.
var weekdayIndex = map[string]int{
	"monday": 0, "tuesday": 1, "wednesday": 2, "thursday": 3,
	"friday": 4, "saturday": 5, "sunday": 6,
}

var dueDateRules = []struct {
	re      *regexp.Regexp
	resolve func(m []string, now time.Time) string
}{
	{
		regexp.MustCompile(`(?i)by\s+(friday|monday|tuesday|wednesday|thursday|saturday|sunday)`),
		func(m []string, now time.Time) string {
			return nextWeekday(now, weekdayIndex[strings.ToLower(m[1])]).Format("2006-01-02")
		},
	},
	{
		regexp.MustCompile(`(?i)by\s+tomorrow`),
		func(m []string, now time.Time) string { return now.AddDate(0, 0, 1).Format("2006-01-02") },
	},
	{
		regexp.MustCompile(`(?i)tomorrow`),
		func(m []string, now time.Time) string { return now.AddDate(0, 0, 1).Format("2006-01-02") },
	},
	{
		regexp.MustCompile(`(?i)today`),
		func(m []string, now time.Time) string { return now.Format("2006-01-02") },
	},
	{
		regexp.MustCompile(`(?i)next week`),
		func(m []string, now time.Time) string { return now.AddDate(0, 0, 7).Format("2006-01-02") },
	},
	{
		regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
		func(m []string, now time.Time) string { return m[1] },
	},
	{
		regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`),
		func(m []string, now time.Time) string { return m[1] },
	},
}

// ExtractDueDate resolves a due date mentioned in the input against the
// current wall-clock date. Weekday names resolve to the next occurrence
// strictly after today: "by friday" said on a Friday means a week out,
// never today.
func ExtractDueDate(input string) (string, bool) {
	return extractDueDateAt(input, time.Now())
}

func extractDueDateAt(input string, now time.Time) (string, bool) {
	for _, rule := range dueDateRules {
		if m := rule.re.FindStringSubmatch(input); m != nil {
			return rule.resolve(m, now), true
		}
	}
	return "", false
}

func nextWeekday(now time.Time, target int) time.Time {
	current := (int(now.Weekday()) + 6) % 7 // Monday-based
	ahead := target - current
	if ahead <= 0 {
		ahead += 7
	}
	return now.AddDate(0, 0, ahead)
}

var (
	clockRe    = regexp.MustCompile(`(?i)(?:at|by)?\s*(\d{1,2}):(\d{2})\s*(am|pm)?`)
	bareHourRe = regexp.MustCompile(`(?i)(?:at|by)?\s*(\d{1,2})\s*(am|pm)`)
)

// Fixed times for named parts of the day, checked in this order.
var dayParts = []struct {
	re   *regexp.Regexp
	time string
}{
	{regexp.MustCompile(`(?i)\bmorning\b`), "09:00"},
	{regexp.MustCompile(`(?i)\bafternoon\b`), "15:00"},
	{regexp.MustCompile(`(?i)\bevening\b`), "18:00"},
	{regexp.MustCompile(`(?i)\bnight\b`), "20:00"},
}

// ExtractTime finds a clock time ("at 7pm", "by 19:30", "in the morning")
// and returns it in 24-hour HH:MM form.
func ExtractTime(input string) (string, bool) {
	if m := clockRe.FindStringSubmatch(input); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return formatClock(mergeMeridiem(hour, strings.ToLower(m[3])), minute), true
	}
	if m := bareHourRe.FindStringSubmatch(input); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return formatClock(mergeMeridiem(hour, strings.ToLower(m[2])), 0), true
	}
	for _, p := range dayParts {
		if p.re.MatchString(input) {
			return p.time, true
		}
	}
	return "", false
}

func mergeMeridiem(hour int, meridiem string) int {
	if meridiem == "pm" && hour < 12 {
		hour += 12
	}
	if meridiem == "am" && hour == 12 {
		hour = 0
	}
	return hour
}

func formatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

var priorityTable = []struct {
	re    *regexp.Regexp
	value string
}{
	{regexp.MustCompile(`(?i)\burgent\b`), "urgent"},
	{regexp.MustCompile(`(?i)\bhigh\b`), "high"},
	{regexp.MustCompile(`(?i)\bmedium\b`), "medium"},
	{regexp.MustCompile(`(?i)\blow\b`), "low"},
	{regexp.MustCompile(`(?i)\bimportant\b`), "high"},
	{regexp.MustCompile(`(?i)\bcritical\b`), "urgent"},
}

// ExtractPriority never comes back empty: with no priority keyword in the
// input it returns "medium".
func ExtractPriority(input string) string {
	if p, ok := ExtractPriorityPattern(input); ok {
		return p
	}
	return "medium"
}

// ExtractPriorityPattern reports absence instead of defaulting to medium.
// Update flows use it so a plain status change leaves priority alone.
func ExtractPriorityPattern(input string) (string, bool) {
	for _, p := range priorityTable {
		if p.re.MatchString(input) {
			return p.value, true
		}
	}
	return "", false
}

var statusTable = []struct {
	re    *regexp.Regexp
	value string
}{
	{regexp.MustCompile(`(?i)\bdone\b`), "completed"},
	{regexp.MustCompile(`(?i)\bcompleted\b`), "completed"},
	{regexp.MustCompile(`(?i)\bfinished\b`), "completed"},
	{regexp.MustCompile(`(?i)\bin progress\b`), "in_progress"},
	{regexp.MustCompile(`(?i)\bstarted\b`), "in_progress"},
	{regexp.MustCompile(`(?i)\bpending\b`), "pending"},
	{regexp.MustCompile(`(?i)\bcancelled\b`), "cancelled"},
	{regexp.MustCompile(`(?i)\bcanceled\b`), "cancelled"},
}

func ExtractStatus(input string) (string, bool) {
	for _, s := range statusTable {
		if s.re.MatchString(input) {
			return s.value, true
		}
	}
	return "", false
}

var taskIDRe = regexp.MustCompile(`(?i)task\s*#?(\d+)`)

// ExtractTaskID picks up references like "task 3" or "task #12".
func ExtractTaskID(input string) (int, bool) {
	m := taskIDRe.FindStringSubmatch(input)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

var taskTitleRe = regexp.MustCompile(`(?i)(?:the\s+)?task\s+(.+?)(?:\s+(?:as|to|is)|$)`)

// ExtractTaskTitle pulls a fuzzy title reference ("the grocery task") used
// to identify a task when no numeric id is present.
func ExtractTaskTitle(input string) (string, bool) {
	if m := taskTitleRe.FindStringSubmatch(input); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}
