package scheduler

import (
	"context"
	"testing"
	"time"

	"taskchat/internal/tasks"
)

type fakeStore struct {
	filters []tasks.FilterParams
	result  tasks.Result
}

func (f *fakeStore) Create(context.Context, tasks.CreateParams) (tasks.Result, error) {
	return tasks.Result{}, nil
}
func (f *fakeStore) Update(context.Context, tasks.UpdateParams) (tasks.Result, error) {
	return tasks.Result{}, nil
}
func (f *fakeStore) Delete(context.Context, int, string) (tasks.Result, error) {
	return tasks.Result{}, nil
}
func (f *fakeStore) List(context.Context) (tasks.Result, error) {
	return tasks.Result{}, nil
}
func (f *fakeStore) Filter(_ context.Context, p tasks.FilterParams) (tasks.Result, error) {
	f.filters = append(f.filters, p)
	return f.result, nil
}
func (f *fakeStore) Get(context.Context, int) (tasks.Task, error) {
	return tasks.Task{}, tasks.ErrNotFound
}

type fakeNotifier struct {
	payloads []interface{}
}

func (f *fakeNotifier) Broadcast(v interface{}) { f.payloads = append(f.payloads, v) }

func TestRemindDueTasksBroadcasts(t *testing.T) {
	fs := &fakeStore{result: tasks.Result{Success: true, Tasks: []tasks.Task{
		{ID: 1, Title: "pay rent", Status: tasks.StatusPending, Priority: tasks.PriorityHigh},
	}, Count: 1}}
	fn := &fakeNotifier{}
	s := New(fs, fn, "0 8 * * *")

	if err := s.RemindDueTasks(context.Background()); err != nil {
		t.Fatalf("remind: %v", err)
	}
	if len(fs.filters) != 1 {
		t.Fatalf("expected 1 filter call, got %d", len(fs.filters))
	}
	p := fs.filters[0]
	if p.Status != "pending" {
		t.Fatalf("status: %q", p.Status)
	}
	if p.DueDateTo != time.Now().UTC().Format("2006-01-02") {
		t.Fatalf("due to: %q", p.DueDateTo)
	}
	if len(fn.payloads) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(fn.payloads))
	}
	payload, ok := fn.payloads[0].(map[string]interface{})
	if !ok || payload["type"] != "due_task_reminder" {
		t.Fatalf("unexpected payload: %+v", fn.payloads[0])
	}
}

func TestRemindDueTasksQuietWhenNothingDue(t *testing.T) {
	fs := &fakeStore{result: tasks.Result{Success: true, Tasks: []tasks.Task{}, Count: 0}}
	fn := &fakeNotifier{}
	s := New(fs, fn, "0 8 * * *")

	if err := s.RemindDueTasks(context.Background()); err != nil {
		t.Fatalf("remind: %v", err)
	}
	if len(fn.payloads) != 0 {
		t.Fatalf("expected no broadcast, got %d", len(fn.payloads))
	}
}
