// Package scheduler pushes periodic due-task reminders to connected
// clients on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"taskchat/internal/tasks"
)

// Notifier receives the reminder payloads. The websocket hub satisfies it.
type Notifier interface {
	Broadcast(v interface{})
}

type Scheduler struct {
	cron     *cron.Cron
	ctx      context.Context
	cancel   context.CancelFunc
	store    tasks.Store
	notifier Notifier
	spec     string
}

// New builds a scheduler that fires per spec (standard 5-field cron, UTC).
func New(store tasks.Store, notifier Notifier, spec string) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		ctx:      ctx,
		cancel:   cancel,
		store:    store,
		notifier: notifier,
		spec:     spec,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.RemindDueTasks(s.ctx); err != nil {
			log.Printf("❌ Due-task reminder failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	s.cron.Start()
	log.Printf("📅 Scheduler started - due-task reminders on %q (UTC)", s.spec)
	return nil
}

// RemindDueTasks broadcasts every pending task that is due today or
// overdue. Nothing is sent when there is nothing due.
func (s *Scheduler) RemindDueTasks(ctx context.Context) error {
	result, err := s.store.Filter(ctx, tasks.FilterParams{
		Status:    string(tasks.StatusPending),
		DueDateTo: time.Now().UTC().Format("2006-01-02"),
	})
	if err != nil {
		return err
	}
	if result.IsError() {
		return fmt.Errorf("filter due tasks: %s", result.Err)
	}
	if len(result.Tasks) == 0 {
		return nil
	}

	s.notifier.Broadcast(map[string]interface{}{
		"type":    "due_task_reminder",
		"message": fmt.Sprintf("You have %d task(s) due", len(result.Tasks)),
		"tasks":   result.Tasks,
	})
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("📅 Scheduler stopped")
}
