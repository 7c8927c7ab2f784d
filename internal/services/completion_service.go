package services

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/habitflow/internal/logger"
	"github.com/terraincognita07/habitflow/internal/models"
)

// CheckInResult describes the outcome of a check-in or correction. On
// ErrAlreadyCompleted, Log holds the completed entry already on file.
type CheckInResult struct {
	Log       models.HabitLog      `json:"log"`
	Habit     models.Habit         `json:"habit"`
	Unlocked  []models.Achievement `json:"unlocked"`
	Duplicate bool                 `json:"duplicate"`
	Corrected bool                 `json:"corrected"`
}

type CompletionService struct {
	store    Store
	location *time.Location
	now      func() time.Time
}

func NewCompletionService(store Store, location *time.Location) *CompletionService {
	if location == nil {
		location = time.UTC
	}
	return &CompletionService{store: store, location: location, now: time.Now}
}

func (service *CompletionService) today() time.Time {
	return CalendarDay(service.now(), service.location)
}

// LogCompletion records a check-in for one habit on one calendar day. A
// completed day is never overwritten: the call fails with
// ErrAlreadyCompleted and writes nothing. A missed or pending entry for the
// day is corrected in place. Counter updates and achievement unlocks commit
// together with the entry.
func (service *CompletionService) LogCompletion(ctx context.Context, userID uint, input CreateCompletionInput) (CheckInResult, error) {
	if err := input.Validate(); err != nil {
		return CheckInResult{}, err
	}
	input.normalize()

	today := service.today()
	day := today
	if input.Date != "" {
		parsed, err := ParseCalendarDate(input.Date)
		if err != nil {
			return CheckInResult{}, invalid("date", "datetime")
		}
		day = parsed
	}
	if day.After(today) {
		return CheckInResult{}, invalid("date", "future")
	}

	result := CheckInResult{Unlocked: []models.Achievement{}}
	err := service.store.Transaction(ctx, func(tx Store) error {
		habit, err := findHabit(ctx, tx, input.HabitID, userID)
		if err != nil {
			return err
		}
		if habit.IsArchived {
			return invalid("habit_id", "archived")
		}
		result.Habit = habit

		window := DayRange(day)
		existing, found, err := tx.Logs().FindByHabitAndDayRange(ctx, habit.ID, userID, window.Start, window.End)
		if err != nil {
			return storeError("load day entry", err)
		}
		if found && existing.IsCompleted() {
			result.Log = existing
			result.Duplicate = true
			return ErrAlreadyCompleted
		}

		entry := models.HabitLog{HabitID: habit.ID, UserID: userID, Date: day}
		if found {
			entry = existing
			result.Corrected = true
		}
		entry.Status = input.Status
		entry.Note = input.Note
		entry.Mood = input.Mood
		entry.Value = input.Value

		counted := false
		if entry.IsCompleted() {
			counted, err = tx.Logs().CountedOnDay(ctx, habit.ID, userID, window.Start, window.End)
			if err != nil {
				return storeError("load day entry", err)
			}
			entry.Counted = true
		}

		if found {
			err = tx.Logs().Save(ctx, &entry)
		} else {
			err = tx.Logs().Create(ctx, &entry)
		}
		if err != nil {
			return storeError("write day entry", err)
		}
		result.Log = entry

		if entry.IsCompleted() {
			unlocked, err := recordCompletion(ctx, tx, &habit, day, today, !counted, service.now().UTC())
			if err != nil {
				return err
			}
			result.Unlocked = unlocked
		}
		result.Habit = habit
		return nil
	})
	if errors.Is(err, ErrAlreadyCompleted) {
		return result, err
	}
	if err != nil {
		return CheckInResult{}, settle("log completion", err)
	}

	logger.Debug("check-in recorded",
		"user_id", userID,
		"habit_id", result.Habit.ID,
		"date", FormatCalendarDate(day),
		"status", result.Log.Status,
		"streak", result.Habit.CurrentStreak,
	)
	return result, nil
}

// UpdateLog corrects status, note, value or mood of an entry. Turning an
// entry completed counts as a completion; turning it away from completed
// rebuilds the streak from history.
func (service *CompletionService) UpdateLog(ctx context.Context, logID uint, userID uint, input UpdateCompletionInput) (CheckInResult, error) {
	if err := input.Validate(); err != nil {
		return CheckInResult{}, err
	}
	input.normalize()

	today := service.today()
	result := CheckInResult{Unlocked: []models.Achievement{}, Corrected: true}
	err := service.store.Transaction(ctx, func(tx Store) error {
		entry, found, err := tx.Logs().FindByIDForUser(ctx, logID, userID)
		if err != nil {
			return storeError("load log", err)
		}
		if !found {
			return ErrNotFound
		}
		wasCompleted := entry.IsCompleted()

		if input.Status != nil {
			entry.Status = *input.Status
		}
		if input.Note != nil {
			entry.Note = *input.Note
		}
		if input.Value != nil {
			entry.Value = *input.Value
		}
		if input.Mood != nil {
			entry.Mood = *input.Mood
		}

		habit, habitFound, err := tx.Habits().FindByIDForUser(ctx, entry.HabitID, userID)
		if err != nil {
			return storeError("load habit", err)
		}
		nowCompleted := entry.IsCompleted()

		counted := entry.Counted
		if habitFound && !wasCompleted && nowCompleted {
			if habit.IsArchived {
				return invalid("habit_id", "archived")
			}
			window := DayRange(entry.Date)
			other, otherFound, err := tx.Logs().FindByHabitAndDayRange(ctx, habit.ID, userID, window.Start, window.End)
			if err != nil {
				return storeError("load day entry", err)
			}
			if otherFound && other.ID != entry.ID && other.IsCompleted() {
				result.Log = other
				result.Habit = habit
				result.Duplicate = true
				return ErrAlreadyCompleted
			}
			if !counted {
				counted, err = tx.Logs().CountedOnDay(ctx, habit.ID, userID, window.Start, window.End)
				if err != nil {
					return storeError("load day entry", err)
				}
			}
		}
		if nowCompleted {
			entry.Counted = true
		}

		if err := tx.Logs().Save(ctx, &entry); err != nil {
			return storeError("update log", err)
		}
		result.Log = entry

		if habitFound {
			switch {
			case !wasCompleted && nowCompleted:
				unlocked, err := recordCompletion(ctx, tx, &habit, entry.Date, today, !counted, service.now().UTC())
				if err != nil {
					return err
				}
				result.Unlocked = unlocked
			case wasCompleted && !nowCompleted:
				if err := resyncStreak(ctx, tx, &habit, today); err != nil {
					return err
				}
			}
			result.Habit = habit
		}
		return nil
	})
	if errors.Is(err, ErrAlreadyCompleted) {
		return result, err
	}
	if err != nil {
		return CheckInResult{}, settle("update log", err)
	}
	return result, nil
}

// DeleteLog soft-deletes an entry; the row stays for history but stops
// counting toward streaks.
func (service *CompletionService) DeleteLog(ctx context.Context, logID uint, userID uint) error {
	today := service.today()
	err := service.store.Transaction(ctx, func(tx Store) error {
		entry, found, err := tx.Logs().FindByIDForUser(ctx, logID, userID)
		if err != nil {
			return storeError("load log", err)
		}
		if !found {
			return ErrNotFound
		}
		if _, err := tx.Logs().SoftDelete(ctx, entry.ID, userID); err != nil {
			return storeError("delete log", err)
		}
		if !entry.IsCompleted() {
			return nil
		}

		habit, habitFound, err := tx.Habits().FindByIDForUser(ctx, entry.HabitID, userID)
		if err != nil {
			return storeError("load habit", err)
		}
		if !habitFound {
			return nil
		}
		return resyncStreak(ctx, tx, &habit, today)
	})
	return settle("delete log", err)
}

func (service *CompletionService) GetByID(ctx context.Context, logID uint, userID uint) (models.HabitLog, error) {
	entry, found, err := service.store.Logs().FindByIDForUser(ctx, logID, userID)
	if err != nil {
		return models.HabitLog{}, storeError("load log", err)
	}
	if !found {
		return models.HabitLog{}, ErrNotFound
	}
	return entry, nil
}

// GetForDate returns the authoritative entry of the habit on day, if any.
func (service *CompletionService) GetForDate(ctx context.Context, habitID uint, userID uint, day time.Time) (models.HabitLog, bool, error) {
	if _, err := findHabit(ctx, service.store, habitID, userID); err != nil {
		return models.HabitLog{}, false, err
	}
	window := DayRange(day)
	entry, found, err := service.store.Logs().FindByHabitAndDayRange(ctx, habitID, userID, window.Start, window.End)
	if err != nil {
		return models.HabitLog{}, false, storeError("load day entry", err)
	}
	return entry, found, nil
}

func (service *CompletionService) GetByDateRange(ctx context.Context, userID uint, window DateRange) ([]models.HabitLog, error) {
	logs, err := service.store.Logs().ListByUserRange(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, storeError("list logs", err)
	}
	return logs, nil
}

func (service *CompletionService) GetTodays(ctx context.Context, userID uint) ([]models.HabitLog, error) {
	return service.GetByDateRange(ctx, userID, DayRange(service.today()))
}

// recordCompletion moves the habit counters for a new completed entry on day
// and unlocks streak and completion-count achievements. The entry must
// already be written through store. count is false when the day was already
// counted toward the total by an earlier entry or status.
func recordCompletion(ctx context.Context, store Store, habit *models.Habit, day time.Time, today time.Time, count bool, now time.Time) ([]models.Achievement, error) {
	day = asCalendarDate(day)
	if habit.LastCompletedAt == nil || !day.Before(asCalendarDate(*habit.LastCompletedAt)) {
		if err := applyCompletion(ctx, store, habit, NextStreak(*habit, day), day, count); err != nil {
			return nil, err
		}
	} else {
		days, err := store.Logs().ListCompletedDays(ctx, habit.ID, habit.UserID, today)
		if err != nil {
			return nil, storeError("load completed days", err)
		}
		applyCounters(habit, StreakEndingAt(*habit, days, *habit.LastCompletedAt), day, count)
		if longest := LongestRun(*habit, days); longest > habit.LongestStreak {
			habit.LongestStreak = longest
		}
		if err := store.Habits().UpdateCounters(ctx, habit); err != nil {
			return nil, storeError("update habit counters", err)
		}
	}

	unlocked, err := evaluateAchievements(ctx, store, habit.UserID, MetricStreak, habit.LongestStreak, &habit.ID, now)
	if err != nil {
		return nil, err
	}
	completions, err := store.Logs().CountCompletedByUser(ctx, habit.UserID)
	if err != nil {
		return nil, storeError("count completions", err)
	}
	more, err := evaluateAchievements(ctx, store, habit.UserID, MetricCompletions, int(completions), nil, now)
	if err != nil {
		return nil, err
	}
	return append(unlocked, more...), nil
}
