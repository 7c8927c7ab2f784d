package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/terraincognita07/habitflow/internal/logger"
	"github.com/terraincognita07/habitflow/internal/models"
)

const reminderTimeLayout = "15:04"

type ReminderRequest struct {
	UserID    uint
	HabitID   uint
	Title     string
	Body      string
	TriggerAt time.Time
}

// ReminderScheduler delivers reminders. Schedule returns an opaque id.
type ReminderScheduler interface {
	Schedule(ctx context.Context, request ReminderRequest) (string, error)
}

type PlannedReminder struct {
	HabitID    uint      `json:"habit_id"`
	ScheduleID string    `json:"schedule_id"`
	TriggerAt  time.Time `json:"trigger_at"`
}

type ReminderService struct {
	store     Store
	scheduler ReminderScheduler
	location  *time.Location
	now       func() time.Time

	mu      sync.Mutex
	planned map[string]time.Time
}

func NewReminderService(store Store, scheduler ReminderScheduler, location *time.Location) *ReminderService {
	if location == nil {
		location = time.UTC
	}
	return &ReminderService{
		store:     store,
		scheduler: scheduler,
		location:  location,
		now:       time.Now,
		planned:   make(map[string]time.Time),
	}
}

// PlanToday schedules one reminder for each habit that is due today, has a
// reminder time still ahead and has no completion today. Repeated calls on
// the same day schedule nothing new.
func (service *ReminderService) PlanToday(ctx context.Context, userID uint) ([]PlannedReminder, error) {
	now := service.now().In(service.location)
	today := CalendarDay(now, service.location)

	habits, err := dueHabits(ctx, service.store, userID, today)
	if err != nil {
		return nil, err
	}
	todays, err := service.store.Logs().ListByUserRange(ctx, userID, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, storeError("list today's logs", err)
	}
	done := make(map[uint]bool, len(todays))
	for _, entry := range todays {
		if entry.IsCompleted() {
			done[entry.HabitID] = true
		}
	}

	planned := make([]PlannedReminder, 0)
	for _, habit := range habits {
		if habit.ReminderTime == "" || done[habit.ID] {
			continue
		}
		triggerAt, ok := service.triggerTime(habit, today)
		if !ok || !triggerAt.After(now) {
			continue
		}

		key := fmt.Sprintf("habit:%d:%d:%s", userID, habit.ID, FormatCalendarDate(today))
		if !service.shouldSchedule(key, today) {
			continue
		}

		id, err := service.scheduler.Schedule(ctx, reminderRequest(habit, triggerAt))
		if err != nil {
			service.forget(key)
			logger.Warn("schedule reminder failed", "user_id", userID, "habit_id", habit.ID, "err", err)
			continue
		}
		planned = append(planned, PlannedReminder{HabitID: habit.ID, ScheduleID: id, TriggerAt: triggerAt})
	}
	return planned, nil
}

// PlanAll runs PlanToday for every known user.
func (service *ReminderService) PlanAll(ctx context.Context) (int, error) {
	userIDs, err := service.store.Users().ListIDs(ctx)
	if err != nil {
		return 0, storeError("list users", err)
	}
	total := 0
	for _, userID := range userIDs {
		planned, err := service.PlanToday(ctx, userID)
		if err != nil {
			logger.Error("plan reminders failed", "user_id", userID, "err", err)
			continue
		}
		total += len(planned)
	}
	return total, nil
}

func (service *ReminderService) triggerTime(habit models.Habit, today time.Time) (time.Time, bool) {
	clock, err := time.Parse(reminderTimeLayout, habit.ReminderTime)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(today.Year(), today.Month(), today.Day(), clock.Hour(), clock.Minute(), 0, 0, service.location), true
}

func reminderRequest(habit models.Habit, triggerAt time.Time) ReminderRequest {
	body := "Time to check in."
	if habit.CurrentStreak > 0 {
		body = fmt.Sprintf("Keep your %d-day streak going.", habit.CurrentStreak)
	}
	return ReminderRequest{
		UserID:    habit.UserID,
		HabitID:   habit.ID,
		Title:     habit.Title,
		Body:      body,
		TriggerAt: triggerAt,
	}
}

func (service *ReminderService) shouldSchedule(key string, today time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if plannedOn, ok := service.planned[key]; ok && plannedOn.Equal(today) {
		return false
	}
	for existing, plannedOn := range service.planned {
		if plannedOn.Before(today) {
			delete(service.planned, existing)
		}
	}
	service.planned[key] = today
	return true
}

func (service *ReminderService) forget(key string) {
	service.mu.Lock()
	defer service.mu.Unlock()
	delete(service.planned, key)
}
