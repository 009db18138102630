package agent

import (
	"context"
	"fmt"
	"strings"

	"taskchat/internal/tasks"
)

// composeResponse renders the action result as the assistant's reply and
// appends it to the transcript.
func (a *Deterministic) composeResponse(_ context.Context, st *state) {
	st.reply = FormatResult(st.result)
	st.transcript = append(st.transcript, assistantTurn(st.reply))
}

// FormatResult turns a store result into reply text: errors verbatim, a
// detail block for single-task successes, a count header plus one line
// per task for lists, otherwise the result's own message.
func FormatResult(r tasks.Result) string {
	switch {
	case r.IsError():
		return r.Err

	case r.Success && r.Task != nil:
		msg := r.Message
		if msg == "" {
			msg = "Action completed successfully! ✅"
		}
		var b strings.Builder
		b.WriteString(msg)
		b.WriteString("\n\n📋 Task Details:\n")
		fmt.Fprintf(&b, "• ID: %d\n", r.Task.ID)
		fmt.Fprintf(&b, "• Title: %s\n", r.Task.Title)
		fmt.Fprintf(&b, "• Status: %s\n", r.Task.Status)
		fmt.Fprintf(&b, "• Priority: %s\n", r.Task.Priority)
		if r.Task.DueDate != nil {
			fmt.Fprintf(&b, "• Due Date: %s\n", r.Task.DueDate.Format("2006-01-02"))
		}
		return b.String()

	case r.Tasks != nil:
		if len(r.Tasks) == 0 {
			return "No tasks found matching your criteria. 🤷‍♂️"
		}
		var b strings.Builder
		fmt.Fprintf(&b, "📝 Found %d task(s):\n\n", len(r.Tasks))
		for _, t := range r.Tasks {
			fmt.Fprintf(&b, "• %s (ID: %d, Status: %s, Priority: %s)\n", t.Title, t.ID, t.Status, t.Priority)
			if t.DueDate != nil {
				fmt.Fprintf(&b, "  📅 Due: %s\n", t.DueDate.Format("2006-01-02"))
			}
		}
		return b.String()

	case r.Message != "":
		return r.Message

	default:
		return "I'm here to help you manage your tasks! 😊"
	}
}
