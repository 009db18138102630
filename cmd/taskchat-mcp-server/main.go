// taskchat-mcp-server exposes the task store as MCP tools over stdio so
// MCP-capable assistants can manage tasks directly.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"taskchat/internal/config"
	"taskchat/internal/tasks"
)

type CreateTaskParams struct {
	Title       string `json:"title" mcp:"the title of the task"`
	Description string `json:"description,omitempty" mcp:"optional task description"`
	DueDate     string `json:"due_date,omitempty" mcp:"due date in YYYY-MM-DD format"`
	Priority    string `json:"priority,omitempty" mcp:"low, medium, high or urgent (default: medium)"`
}

type UpdateTaskParams struct {
	TaskID      int    `json:"task_id,omitempty" mcp:"numeric id of the task to update"`
	TitleMatch  string `json:"title_match,omitempty" mcp:"fuzzy title match when the id is unknown"`
	Title       string `json:"title,omitempty" mcp:"new title"`
	Description string `json:"description,omitempty" mcp:"new description"`
	Status      string `json:"status,omitempty" mcp:"pending, in_progress, completed or cancelled"`
	DueDate     string `json:"due_date,omitempty" mcp:"new due date in YYYY-MM-DD format"`
	Priority    string `json:"priority,omitempty" mcp:"new priority"`
}

type DeleteTaskParams struct {
	TaskID     int    `json:"task_id,omitempty" mcp:"numeric id of the task to delete"`
	TitleMatch string `json:"title_match,omitempty" mcp:"fuzzy title match when the id is unknown"`
}

type ListTasksParams struct{}

type FilterTasksParams struct {
	Status      string `json:"status,omitempty" mcp:"filter by status"`
	Priority    string `json:"priority,omitempty" mcp:"filter by priority"`
	DueDateFrom string `json:"due_date_from,omitempty" mcp:"earliest due date, YYYY-MM-DD"`
	DueDateTo   string `json:"due_date_to,omitempty" mcp:"latest due date, YYYY-MM-DD"`
}

type taskMCPServer struct {
	store tasks.Store
}

// resultContent renders a store result as tool output: the result JSON so
// the model can read fields, flagged as an error for user-facing failures.
func resultContent(r tasks.Result, err error) (*mcp.CallToolResultFor[any], error) {
	if err != nil {
		return &mcp.CallToolResultFor[any]{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("❌ %v", err)}},
		}, nil
	}
	payload, merr := json.Marshal(r)
	if merr != nil {
		return nil, merr
	}
	return &mcp.CallToolResultFor[any]{
		IsError: r.IsError(),
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
	}, nil
}

func (s *taskMCPServer) CreateTask(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[CreateTaskParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	log.Printf("📝 MCP: create task %q", args.Title)
	r, err := s.store.Create(ctx, tasks.CreateParams{
		Title:       args.Title,
		Description: args.Description,
		DueDate:     args.DueDate,
		Priority:    args.Priority,
	})
	return resultContent(r, err)
}

func (s *taskMCPServer) UpdateTask(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[UpdateTaskParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	log.Printf("✏️ MCP: update task id=%d match=%q", args.TaskID, args.TitleMatch)
	r, err := s.store.Update(ctx, tasks.UpdateParams{
		TaskID:      args.TaskID,
		TitleMatch:  args.TitleMatch,
		Title:       args.Title,
		Description: args.Description,
		Status:      args.Status,
		DueDate:     args.DueDate,
		Priority:    args.Priority,
	})
	return resultContent(r, err)
}

func (s *taskMCPServer) DeleteTask(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[DeleteTaskParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	log.Printf("🗑 MCP: delete task id=%d match=%q", args.TaskID, args.TitleMatch)
	r, err := s.store.Delete(ctx, args.TaskID, args.TitleMatch)
	return resultContent(r, err)
}

func (s *taskMCPServer) ListTasks(ctx context.Context, _ *mcp.ServerSession, _ *mcp.CallToolParamsFor[ListTasksParams]) (*mcp.CallToolResultFor[any], error) {
	r, err := s.store.List(ctx)
	return resultContent(r, err)
}

func (s *taskMCPServer) FilterTasks(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[FilterTasksParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	r, err := s.store.Filter(ctx, tasks.FilterParams{
		Status:      args.Status,
		Priority:    args.Priority,
		DueDateFrom: args.DueDateFrom,
		DueDateTo:   args.DueDateTo,
	})
	return resultContent(r, err)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	ctx := context.Background()

	db, err := tasks.Connect(cfg.ConnString())
	if err != nil {
		log.Fatalf("❌ failed to connect to database: %v", err)
	}
	defer db.Close()

	store := tasks.NewPostgresStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("❌ failed to ensure schema: %v", err)
	}

	log.Printf("🚀 Starting Task Management MCP Server")

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "taskchat-mcp",
		Version: "1.0.0",
	}, nil)

	ts := &taskMCPServer{store: store}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_task",
		Description: "Creates a new task with a title and optional description, due date and priority",
	}, ts.CreateTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_task",
		Description: "Updates a task identified by id or fuzzy title match",
	}, ts.UpdateTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_task",
		Description: "Deletes a task identified by id or fuzzy title match",
	}, ts.DeleteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "Lists all tasks, newest first",
	}, ts.ListTasks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "filter_tasks",
		Description: "Filters tasks by status, priority and due date range",
	}, ts.FilterTasks)

	if err := server.Run(context.Background(), mcp.NewStdioTransport()); err != nil {
		log.Fatalf("❌ MCP server stopped: %v", err)
	}
}
