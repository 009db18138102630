package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"taskchat/internal/llm"
	"taskchat/internal/tasks"
)

const systemPrompt = `You are an AI-powered task management assistant. Your role is to help users manage their tasks through natural language commands.

You have access to tools for creating, updating, deleting, listing, and filtering tasks.

IMPORTANT: When users mention creating a task, use the create_task tool immediately. Don't ask for clarification unless absolutely necessary.

For task creation:
- Extract title from the user's message
- Set due date if mentioned
- Set priority if mentioned (default to medium)
- Create the task immediately using create_task tool

Always respond with friendly, natural language and appropriate emojis.`

// maxToolRounds bounds the generate/execute loop so a model that keeps
// requesting tools cannot spin forever.
const maxToolRounds = 5

// LLM is the model-backed strategy: the model decides which task tools to
// call and phrases the reply itself.
type LLM struct {
	client llm.Client
	store  tasks.Store
}

func NewLLM(client llm.Client, store tasks.Store) *LLM {
	return &LLM{client: client, store: store}
}

func (a *LLM) Process(ctx context.Context, userMessage string, history []Turn) (string, []Turn, error) {
	msgs := []llm.Message{{Role: "system", Content: systemPrompt}}
	for _, t := range history {
		msgs = append(msgs, llm.Message{Role: t.Role, Content: t.Content})
	}
	msgs = append(msgs, llm.Message{Role: "user", Content: userMessage})

	toolClient, hasTools := a.client.(llm.ToolClient)

	for round := 0; round < maxToolRounds; round++ {
		var resp llm.Response
		var err error
		if hasTools {
			resp, err = toolClient.GenerateWithTools(ctx, msgs, llm.TaskTools())
		} else {
			resp, err = a.client.Generate(ctx, msgs)
		}
		if err != nil {
			return "", history, fmt.Errorf("llm generate: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			transcript := append(append([]Turn{}, history...),
				userTurn(userMessage), assistantTurn(resp.Content))
			return resp.Content, transcript, nil
		}

		msgs = append(msgs, llm.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			result := a.callTool(ctx, call)
			payload, err := json.Marshal(result)
			if err != nil {
				payload = []byte(`{"error": "failed to encode tool result"}`)
			}
			msgs = append(msgs, llm.Message{
				Role:       "tool",
				ToolCallID: call.ID,
				Content:    string(payload),
			})
		}
	}

	return "", history, fmt.Errorf("llm did not finish after %d tool rounds", maxToolRounds)
}

func (a *LLM) callTool(ctx context.Context, call llm.ToolCall) tasks.Result {
	args := call.Function.Arguments

	var result tasks.Result
	var err error
	switch call.Function.Name {
	case "create_task":
		result, err = a.store.Create(ctx, tasks.CreateParams{
			Title:       argString(args, "title"),
			Description: argString(args, "description"),
			DueDate:     argString(args, "due_date"),
			Priority:    argString(args, "priority"),
		})
	case "update_task":
		result, err = a.store.Update(ctx, tasks.UpdateParams{
			TaskID:      argInt(args, "task_id"),
			TitleMatch:  argString(args, "title_match"),
			Title:       argString(args, "title"),
			Description: argString(args, "description"),
			Status:      argString(args, "status"),
			DueDate:     argString(args, "due_date"),
			Priority:    argString(args, "priority"),
		})
	case "delete_task":
		result, err = a.store.Delete(ctx, argInt(args, "task_id"), argString(args, "title_match"))
	case "list_tasks":
		result, err = a.store.List(ctx)
	case "filter_tasks":
		result, err = a.store.Filter(ctx, tasks.FilterParams{
			Status:      argString(args, "status"),
			Priority:    argString(args, "priority"),
			DueDateFrom: argString(args, "due_date_from"),
			DueDateTo:   argString(args, "due_date_to"),
		})
	default:
		return tasks.Result{Err: fmt.Sprintf("unknown tool: %s", call.Function.Name)}
	}

	if err != nil {
		log.Printf("tool %s failed: %v", call.Function.Name, err)
		return tasks.Result{Err: "An error occurred: " + err.Error()}
	}
	return result
}

func argString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argInt(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return 0
}
