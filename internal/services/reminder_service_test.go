package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type reminderSchedulerStub struct {
	requests []ReminderRequest
	err      error
}

func (stub *reminderSchedulerStub) Schedule(ctx context.Context, request ReminderRequest) (string, error) {
	if stub.err != nil {
		return "", stub.err
	}
	stub.requests = append(stub.requests, request)
	return fmt.Sprintf("reminder-%d", len(stub.requests)), nil
}

func TestReminderServicePlansOncePerHabitPerDay(t *testing.T) {
	now := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)
	services := newTestServices(now)
	ctx := context.Background()

	due := mustCreateHabit(t, services, 1, CreateHabitInput{Title: "Read", Frequency: "daily", ReminderTime: "09:00"})
	mustCreateHabit(t, services, 1, CreateHabitInput{Title: "Early", Frequency: "daily", ReminderTime: "07:00"})
	mustCreateHabit(t, services, 1, CreateHabitInput{Title: "Silent", Frequency: "daily"})
	done := mustCreateHabit(t, services, 1, CreateHabitInput{Title: "Done", Frequency: "daily", ReminderTime: "20:00"})
	paused := mustCreateHabit(t, services, 1, CreateHabitInput{Title: "Paused", Frequency: "daily", ReminderTime: "20:00"})
	mustComplete(t, services, 1, done.ID, "2024-01-10")
	if _, err := services.habits.TogglePause(ctx, paused.ID, 1); err != nil {
		t.Fatalf("TogglePause() unexpected error: %v", err)
	}

	scheduler := &reminderSchedulerStub{}
	reminders := NewReminderService(services.store, scheduler, time.UTC)
	reminders.now = fixedClock(now)

	planned, err := reminders.PlanToday(ctx, 1)
	if err != nil {
		t.Fatalf("PlanToday() unexpected error: %v", err)
	}
	if len(planned) != 1 || planned[0].HabitID != due.ID || planned[0].ScheduleID != "reminder-1" {
		t.Fatalf("expected one reminder for the due habit, got %+v", planned)
	}
	if !scheduler.requests[0].TriggerAt.Equal(time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected trigger time %s", scheduler.requests[0].TriggerAt)
	}

	again, err := reminders.PlanToday(ctx, 1)
	if err != nil || len(again) != 0 || len(scheduler.requests) != 1 {
		t.Fatalf("expected no duplicate reminders, got %+v (%v)", again, err)
	}

	reminders.now = fixedClock(now.AddDate(0, 0, 1))
	next, err := reminders.PlanToday(ctx, 1)
	if err != nil {
		t.Fatalf("PlanToday() next day unexpected error: %v", err)
	}
	if len(next) != 2 {
		t.Fatalf("expected reminders for Read and Done on the next day, got %+v", next)
	}
}

func TestReminderServiceRetriesAfterSchedulerFailure(t *testing.T) {
	now := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)
	services := newTestServices(now)
	mustCreateHabit(t, services, 1, CreateHabitInput{Title: "Read", Frequency: "daily", ReminderTime: "09:00"})

	scheduler := &reminderSchedulerStub{err: errors.New("offline")}
	reminders := NewReminderService(services.store, scheduler, time.UTC)
	reminders.now = fixedClock(now)

	planned, err := reminders.PlanToday(context.Background(), 1)
	if err != nil || len(planned) != 0 {
		t.Fatalf("expected nothing planned while scheduler fails, got %+v (%v)", planned, err)
	}

	scheduler.err = nil
	total, err := reminders.PlanAll(context.Background())
	if err != nil || total != 1 {
		t.Fatalf("expected retry to schedule 1 reminder, got %d (%v)", total, err)
	}
}
