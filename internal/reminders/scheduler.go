package reminders

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/terraincognita07/habitflow/internal/logger"
	"github.com/terraincognita07/habitflow/internal/services"
)

const dispatchSpec = "@every 1m"

// Sender delivers a reminder once its trigger time has passed.
type Sender interface {
	Send(ctx context.Context, id string, request services.ReminderRequest) error
}

// LogSender writes each reminder as a log line.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, id string, request services.ReminderRequest) error {
	logger.Info("reminder due",
		"reminder_id", id,
		"user_id", request.UserID,
		"habit_id", request.HabitID,
		"title", request.Title,
		"trigger_at", request.TriggerAt.Format(time.RFC3339),
	)
	return nil
}

type pendingReminder struct {
	id      string
	request services.ReminderRequest
}

// Scheduler keeps reminders in memory and hands due ones to a Sender from a
// cron job.
type Scheduler struct {
	cron    *cron.Cron
	sender  Sender
	now     func() time.Time
	mu      sync.Mutex
	pending map[string]pendingReminder
}

func NewScheduler(sender Sender, location *time.Location) (*Scheduler, error) {
	if sender == nil {
		sender = LogSender{}
	}
	if location == nil {
		location = time.UTC
	}

	scheduler := &Scheduler{
		cron:    cron.New(cron.WithLocation(location)),
		sender:  sender,
		now:     time.Now,
		pending: make(map[string]pendingReminder),
	}
	if _, err := scheduler.cron.AddFunc(dispatchSpec, func() {
		scheduler.Dispatch(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("register reminder dispatch: %w", err)
	}
	return scheduler, nil
}

func (scheduler *Scheduler) Schedule(ctx context.Context, request services.ReminderRequest) (string, error) {
	if request.TriggerAt.IsZero() {
		return "", fmt.Errorf("reminder for habit %d has no trigger time", request.HabitID)
	}

	id := uuid.NewString()
	scheduler.mu.Lock()
	scheduler.pending[id] = pendingReminder{id: id, request: request}
	scheduler.mu.Unlock()

	logger.Debug("reminder scheduled", "reminder_id", id, "habit_id", request.HabitID, "trigger_at", request.TriggerAt)
	return id, nil
}

// Cancel drops a pending reminder. It reports whether the id was known.
func (scheduler *Scheduler) Cancel(id string) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if _, ok := scheduler.pending[id]; !ok {
		return false
	}
	delete(scheduler.pending, id)
	return true
}

func (scheduler *Scheduler) Pending() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.pending)
}

// Dispatch sends every reminder whose trigger time has passed, oldest first.
// A reminder whose send fails stays pending for the next run.
func (scheduler *Scheduler) Dispatch(ctx context.Context) int {
	now := scheduler.now()

	scheduler.mu.Lock()
	due := make([]pendingReminder, 0)
	for id, reminder := range scheduler.pending {
		if !reminder.request.TriggerAt.After(now) {
			due = append(due, reminder)
			delete(scheduler.pending, id)
		}
	}
	scheduler.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		return due[i].request.TriggerAt.Before(due[j].request.TriggerAt)
	})

	sent := 0
	for _, reminder := range due {
		if err := scheduler.sender.Send(ctx, reminder.id, reminder.request); err != nil {
			logger.Error("send reminder", "reminder_id", reminder.id, "habit_id", reminder.request.HabitID, "err", err)
			scheduler.mu.Lock()
			scheduler.pending[reminder.id] = reminder
			scheduler.mu.Unlock()
			continue
		}
		sent++
	}
	return sent
}

// AddDailyJob runs fn on the given cron spec, e.g. "5 0 * * *".
func (scheduler *Scheduler) AddDailyJob(spec string, fn func(ctx context.Context)) error {
	if _, err := scheduler.cron.AddFunc(spec, func() {
		fn(context.Background())
	}); err != nil {
		return fmt.Errorf("register job %q: %w", spec, err)
	}
	return nil
}

func (scheduler *Scheduler) Start() {
	scheduler.cron.Start()
}

// Stop halts the cron loop and waits for running jobs to finish or ctx to end.
func (scheduler *Scheduler) Stop(ctx context.Context) {
	done := scheduler.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
