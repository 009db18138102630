package history

import (
	"testing"

	"taskchat/internal/agent"
)

func TestHistoryReplaceGetReset(t *testing.T) {
	h := NewManager()

	h.Replace("a", []agent.Turn{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
	})
	h.Replace("b", []agent.Turn{
		{Role: "user", Content: "foo"},
	})

	turnsA := h.Get("a")
	turnsB := h.Get("b")
	if len(turnsA) != 2 || len(turnsB) != 1 {
		t.Fatalf("unexpected lengths: a=%d b=%d", len(turnsA), len(turnsB))
	}
	if turnsA[1].Role != "assistant" || turnsA[1].Content != "hi" {
		t.Fatalf("unexpected a[1]: %+v", turnsA[1])
	}

	// Mutating the returned slice must not leak into stored state.
	turnsA[0].Content = "mutated"
	if h.Get("a")[0].Content != "hello" {
		t.Fatal("internal state mutated via returned slice")
	}

	h.Reset("a")
	if len(h.Get("a")) != 0 {
		t.Fatal("reset did not clear the conversation")
	}
	if len(h.Get("b")) != 1 {
		t.Fatal("reset must not affect other conversations")
	}
}
