package agent

import (
	"context"
	"strings"
	"testing"

	"taskchat/internal/llm"
	"taskchat/internal/tasks"
)

// fakeToolLLM plays back a scripted sequence of responses and records the
// messages it was handed on each round.
type fakeToolLLM struct {
	script []llm.Response
	calls  [][]llm.Message
}

func (f *fakeToolLLM) Generate(ctx context.Context, msgs []llm.Message) (llm.Response, error) {
	return f.GenerateWithTools(ctx, msgs, nil)
}

func (f *fakeToolLLM) GenerateWithTools(_ context.Context, msgs []llm.Message, _ []llm.Tool) (llm.Response, error) {
	f.calls = append(f.calls, msgs)
	resp := f.script[0]
	if len(f.script) > 1 {
		f.script = f.script[1:]
	}
	return resp, nil
}

func TestLLMProcessExecutesToolCalls(t *testing.T) {
	task := tasks.Task{ID: 7, Title: "buy milk", Status: tasks.StatusPending, Priority: tasks.PriorityMedium}
	fs := &fakeStore{result: tasks.Result{Success: true, Message: "Task 'buy milk' created successfully", Task: &task}}
	client := &fakeToolLLM{script: []llm.Response{
		{ToolCalls: []llm.ToolCall{{
			ID:   "call-1",
			Type: "function",
			Function: llm.FunctionCall{
				Name: "create_task",
				Arguments: map[string]interface{}{
					"title":    "buy milk",
					"priority": "medium",
				},
			},
		}}},
		{Content: "Created task 'buy milk' for you! ✅"},
	}}
	a := NewLLM(client, fs)

	reply, hist, err := a.Process(context.Background(), "remind me to buy milk", nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(fs.creates) != 1 || fs.creates[0].Title != "buy milk" {
		t.Fatalf("unexpected creates: %+v", fs.creates)
	}
	if reply != "Created task 'buy milk' for you! ✅" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if len(hist) != 2 || hist[0].Role != "user" || hist[1].Role != "assistant" {
		t.Fatalf("unexpected history: %+v", hist)
	}

	// Second round must carry the tool result back to the model.
	if len(client.calls) != 2 {
		t.Fatalf("expected 2 generate rounds, got %d", len(client.calls))
	}
	last := client.calls[1][len(client.calls[1])-1]
	if last.Role != "tool" || last.ToolCallID != "call-1" {
		t.Fatalf("unexpected tool message: %+v", last)
	}
	if !strings.Contains(last.Content, "created successfully") {
		t.Fatalf("tool result not forwarded: %q", last.Content)
	}
}

func TestLLMProcessSendsSystemPromptFirst(t *testing.T) {
	client := &fakeToolLLM{script: []llm.Response{{Content: "Hi! 😊"}}}
	a := NewLLM(client, &fakeStore{})

	if _, _, err := a.Process(context.Background(), "hello", []Turn{{Role: "user", Content: "earlier"}}); err != nil {
		t.Fatalf("process: %v", err)
	}
	msgs := client.calls[0]
	if msgs[0].Role != "system" || !strings.Contains(msgs[0].Content, "task management assistant") {
		t.Fatalf("system prompt missing: %+v", msgs[0])
	}
	if msgs[1].Content != "earlier" || msgs[2].Content != "hello" {
		t.Fatalf("history order wrong: %+v", msgs)
	}
}

func TestLLMProcessBoundsToolRounds(t *testing.T) {
	loop := llm.Response{ToolCalls: []llm.ToolCall{{
		ID:       "call-n",
		Type:     "function",
		Function: llm.FunctionCall{Name: "list_tasks"},
	}}}
	client := &fakeToolLLM{script: []llm.Response{loop}}
	fs := &fakeStore{result: tasks.Result{Success: true, Tasks: []tasks.Task{}, Count: 0}}
	a := NewLLM(client, fs)

	_, _, err := a.Process(context.Background(), "list everything forever", nil)
	if err == nil {
		t.Fatal("expected an error once the round limit is hit")
	}
	if len(client.calls) != maxToolRounds {
		t.Fatalf("expected %d rounds, got %d", maxToolRounds, len(client.calls))
	}
}
