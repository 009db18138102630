package agent

import (
	"context"
	"strings"

	"taskchat/internal/nlp"
	"taskchat/internal/tasks"
)

const helpMessage = "I can help you manage tasks! 😊\n\n" +
	"Try saying:\n" +
	"• 'Create a task to buy groceries tomorrow'\n" +
	"• 'Show me all my tasks'\n" +
	"• 'Mark task 1 as completed'\n" +
	"• 'Delete the grocery task'\n\n" +
	"What would you like to do?"

const createGuidance = "I'd be happy to help you create a task! 😊\n\n" +
	"Could you please tell me what you'd like to do? For example:\n" +
	"• 'Buy groceries tomorrow'\n" +
	"• 'Call the dentist next week'\n" +
	"• 'Finish the report by Friday'"

const updateGuidance = "I can help you update a task! 😊\n\n" +
	"Please tell me which task to update:\n" +
	"• 'Mark task 1 as completed'\n" +
	"• 'Update the grocery task to high priority'\n" +
	"• 'Change task 2 to due tomorrow'"

const deleteGuidance = "I can help you delete a task! 😊\n\n" +
	"Please tell me which task to delete:\n" +
	"• 'Delete task 1'\n" +
	"• 'Remove the grocery task'\n" +
	"• 'Cancel the dentist appointment'"

// executeAction maps the classified intent to exactly one store call.
// Unexpected store failures are wrapped into a generic user-facing error
// here; nothing below this point panics the conversation.
func (a *Deterministic) executeAction(ctx context.Context, st *state) {
	var result tasks.Result
	var err error

	switch st.intent {
	case nlp.IntentCreate:
		result, err = a.createFromInput(ctx, st.input)
	case nlp.IntentUpdate:
		result, err = a.updateFromInput(ctx, st.input)
	case nlp.IntentDelete:
		result, err = a.deleteFromInput(ctx, st.input)
	case nlp.IntentList:
		result, err = a.store.List(ctx)
	case nlp.IntentFilter:
		result, err = a.filterFromInput(ctx, st.input)
	default:
		// The general fallback gives creation one more chance with a
		// broader keyword scan before replying with usage help.
		if nlp.MentionsCreation(st.input) {
			result, err = a.createFromInput(ctx, st.input)
		} else {
			result = tasks.Result{Message: helpMessage}
		}
	}

	if err != nil {
		result = tasks.Result{Err: "An error occurred: " + err.Error()}
	}
	st.result = result
}

func (a *Deterministic) createFromInput(ctx context.Context, input string) (tasks.Result, error) {
	title := strings.TrimSpace(nlp.ExtractTitle(input))
	if title == "" {
		return tasks.Result{Err: createGuidance}, nil
	}

	description, _ := nlp.ExtractDescription(input)
	dueDate, _ := nlp.ExtractDueDate(input)
	timeHint, _ := nlp.ExtractTime(input)
	priority := nlp.ExtractPriority(input)

	return a.store.Create(ctx, tasks.CreateParams{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		TimeHint:    timeHint,
	})
}

func (a *Deterministic) updateFromInput(ctx context.Context, input string) (tasks.Result, error) {
	taskID, _ := nlp.ExtractTaskID(input)
	titleMatch, _ := nlp.ExtractTaskTitle(input)
	if taskID == 0 && titleMatch == "" {
		return tasks.Result{Err: updateGuidance}, nil
	}

	newTitle, _ := nlp.ExtractTitlePattern(input)
	newDescription, _ := nlp.ExtractDescription(input)
	newStatus, _ := nlp.ExtractStatus(input)
	newDueDate, _ := nlp.ExtractDueDate(input)
	newPriority, _ := nlp.ExtractPriorityPattern(input)

	return a.store.Update(ctx, tasks.UpdateParams{
		TaskID:      taskID,
		TitleMatch:  titleMatch,
		Title:       newTitle,
		Description: newDescription,
		Status:      newStatus,
		DueDate:     newDueDate,
		Priority:    newPriority,
	})
}

func (a *Deterministic) deleteFromInput(ctx context.Context, input string) (tasks.Result, error) {
	taskID, _ := nlp.ExtractTaskID(input)
	titleMatch, _ := nlp.ExtractTaskTitle(input)
	if taskID == 0 && titleMatch == "" {
		return tasks.Result{Err: deleteGuidance}, nil
	}
	return a.store.Delete(ctx, taskID, titleMatch)
}

func (a *Deterministic) filterFromInput(ctx context.Context, input string) (tasks.Result, error) {
	status, _ := nlp.ExtractStatus(input)
	priority := nlp.ExtractPriority(input)
	dueDate, _ := nlp.ExtractDueDate(input)

	// The due date only bounds the range from below; there is no phrasing
	// for an upper bound in the deterministic pipeline.
	return a.store.Filter(ctx, tasks.FilterParams{
		Status:      status,
		Priority:    priority,
		DueDateFrom: dueDate,
	})
}
