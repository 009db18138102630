package chatlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileRecorder_AppendAndLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "chat.jsonl")
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}

	ev1 := Event{Timestamp: time.Unix(1, 0).UTC(), ConversationID: "a", UserMessage: "hi", Intent: "general", AssistantResponse: "hello"}
	ev2 := Event{Timestamp: time.Unix(2, 0).UTC(), ConversationID: "b", UserMessage: "list my tasks", Intent: "list", AssistantResponse: "No tasks found matching your criteria. 🤷‍♂️"}
	if err := rec.AppendInteraction(ev1); err != nil {
		t.Fatalf("append1: %v", err)
	}
	if err := rec.AppendInteraction(ev2); err != nil {
		t.Fatalf("append2: %v", err)
	}

	events, err := rec.LoadInteractions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2, got %d", len(events))
	}
	if events[0].ConversationID != "a" || events[1].ConversationID != "b" {
		t.Fatalf("order mismatch: %+v", events)
	}
	if events[1].Intent != "list" {
		t.Fatalf("intent not round-tripped: %+v", events[1])
	}

	st, err := os.Stat(p)
	if err != nil || st.Size() == 0 {
		t.Fatal("file not written")
	}
}
