package llm

import "context"

type Message struct {
	Role       string
	Content    string
	ToolCallID string     // set on "tool" messages answering a tool call
	ToolCalls  []ToolCall // set on assistant messages that requested tools
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	ToolCalls        []ToolCall
}

type Tool struct {
	Type     string
	Function Function
}

type Function struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

type ToolCall struct {
	ID       string
	Type     string
	Function FunctionCall
}

type FunctionCall struct {
	Name      string
	Arguments map[string]interface{}
}

type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}

// ToolClient is implemented by providers that support function calling.
type ToolClient interface {
	Client
	GenerateWithTools(ctx context.Context, messages []Message, tools []Tool) (Response, error)
}
