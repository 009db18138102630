// Package agent turns chat messages into task-store operations and
// natural-language replies. Two strategies implement the same entry
// point: the deterministic keyword pipeline and an LLM-backed agent with
// function calling. The strategy is picked once at startup.
package agent

import (
	"context"
	"time"

	"taskchat/internal/nlp"
	"taskchat/internal/tasks"
)

// Turn is one transcript entry. Turns are never mutated once appended;
// the transcript grows copy-on-append so concurrent conversations can
// share nothing.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func userTurn(content string) Turn {
	return Turn{Role: "user", Content: content, Timestamp: time.Now().UTC()}
}

func assistantTurn(content string) Turn {
	return Turn{Role: "assistant", Content: content, Timestamp: time.Now().UTC()}
}

// Agent processes one user message against the supplied conversation
// history and returns the reply plus the extended history. Every user
// turn yields exactly one assistant turn, appended right after it.
type Agent interface {
	Process(ctx context.Context, userMessage string, history []Turn) (string, []Turn, error)
}

// Deterministic is the rule-based strategy. Behavior is defined entirely
// by the nlp package's pattern order and the fallback policy here; there
// is no model involved.
type Deterministic struct {
	store tasks.Store
}

func NewDeterministic(store tasks.Store) *Deterministic {
	return &Deterministic{store: store}
}

// state carries one turn through the pipeline stages.
type state struct {
	input      string
	transcript []Turn
	intent     nlp.Intent
	result     tasks.Result
	reply      string
}

// Process runs the fixed pipeline: classify intent, execute the action,
// compose the response. The stages run in order, once each, and no stage
// is skipped or retried.
func (a *Deterministic) Process(ctx context.Context, userMessage string, history []Turn) (string, []Turn, error) {
	st := &state{
		input:      userMessage,
		transcript: append(append([]Turn{}, history...), userTurn(userMessage)),
	}

	steps := []func(context.Context, *state){
		a.classifyIntent,
		a.executeAction,
		a.composeResponse,
	}
	for _, step := range steps {
		step(ctx, st)
	}

	return st.reply, st.transcript, nil
}

func (a *Deterministic) classifyIntent(_ context.Context, st *state) {
	st.intent = nlp.Classify(st.input)
}
