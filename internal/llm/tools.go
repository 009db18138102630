package llm

// TaskTools returns the task-management tool definitions handed to
// function-calling models. Names and shapes match the store operations.
func TaskTools() []Tool {
	return []Tool{
		{
			Type: "function",
			Function: Function{
				Name:        "create_task",
				Description: "Add a new task. Provide title (required), optional description, due_date (YYYY-MM-DD), and priority (low|medium|high|urgent).",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"title": map[string]interface{}{
							"type":        "string",
							"description": "The task title",
						},
						"description": map[string]interface{}{
							"type":        "string",
							"description": "Optional task description",
						},
						"due_date": map[string]interface{}{
							"type":        "string",
							"description": "Optional due date in YYYY-MM-DD format",
						},
						"priority": map[string]interface{}{
							"type":        "string",
							"description": "Task priority: low, medium, high or urgent (default medium)",
						},
					},
					"required": []string{"title"},
				},
			},
		},
		{
			Type: "function",
			Function: Function{
				Name:        "update_task",
				Description: "Modify a task by id or matching title. You can change title, description, status, due_date, or priority. Provide either task_id or title_match.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"task_id": map[string]interface{}{
							"type":        "integer",
							"description": "The task ID to update",
						},
						"title_match": map[string]interface{}{
							"type":        "string",
							"description": "Title fragment identifying the task when no ID is known",
						},
						"title": map[string]interface{}{
							"type":        "string",
							"description": "New title",
						},
						"description": map[string]interface{}{
							"type":        "string",
							"description": "New description",
						},
						"status": map[string]interface{}{
							"type":        "string",
							"description": "New status: pending, in_progress, completed or cancelled",
						},
						"due_date": map[string]interface{}{
							"type":        "string",
							"description": "New due date in YYYY-MM-DD format",
						},
						"priority": map[string]interface{}{
							"type":        "string",
							"description": "New priority: low, medium, high or urgent",
						},
					},
					"required": []string{},
				},
			},
		},
		{
			Type: "function",
			Function: Function{
				Name:        "delete_task",
				Description: "Delete a task by id or approximate title.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"task_id": map[string]interface{}{
							"type":        "integer",
							"description": "The task ID to delete",
						},
						"title_match": map[string]interface{}{
							"type":        "string",
							"description": "Title fragment identifying the task when no ID is known",
						},
					},
					"required": []string{},
				},
			},
		},
		{
			Type: "function",
			Function: Function{
				Name:        "list_tasks",
				Description: "Return all tasks.",
				Parameters: map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
					"required":   []string{},
				},
			},
		},
		{
			Type: "function",
			Function: Function{
				Name:        "filter_tasks",
				Description: "Filter tasks by status, priority, or due date range.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"status": map[string]interface{}{
							"type":        "string",
							"description": "Filter by status: pending, in_progress, completed or cancelled",
						},
						"priority": map[string]interface{}{
							"type":        "string",
							"description": "Filter by priority: low, medium, high or urgent",
						},
						"due_date_from": map[string]interface{}{
							"type":        "string",
							"description": "Tasks due from this date (YYYY-MM-DD)",
						},
						"due_date_to": map[string]interface{}{
							"type":        "string",
							"description": "Tasks due until this date (YYYY-MM-DD)",
						},
					},
					"required": []string{},
				},
			},
		},
	}
}
