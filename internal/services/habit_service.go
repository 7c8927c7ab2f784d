package services

import (
	"context"
	"time"

	"github.com/terraincognita07/habitflow/internal/logger"
	"github.com/terraincognita07/habitflow/internal/models"
)

type HabitFilter struct {
	IncludeArchived bool
	IncludePaused   bool
}

type HabitService struct {
	store    Store
	location *time.Location
	now      func() time.Time
}

func NewHabitService(store Store, location *time.Location) *HabitService {
	if location == nil {
		location = time.UTC
	}
	return &HabitService{store: store, location: location, now: time.Now}
}

func (service *HabitService) today() time.Time {
	return CalendarDay(service.now(), service.location)
}

// Create inserts the habit with zero counters, bumps the user's lifetime
// habit counter and unlocks any habit-count achievements it reaches.
func (service *HabitService) Create(ctx context.Context, userID uint, input CreateHabitInput) (models.Habit, []models.Achievement, error) {
	if err := input.Validate(); err != nil {
		return models.Habit{}, nil, err
	}
	input.normalize()
	startDate, endDate, err := parseScheduleWindow(input.StartDate, input.EndDate)
	if err != nil {
		return models.Habit{}, nil, err
	}

	habit := models.Habit{
		UserID:       userID,
		Title:        input.Title,
		Category:     input.Category,
		Frequency:    input.Frequency,
		CustomDays:   normalizeCustomDays(input.CustomDays),
		StartDate:    startDate,
		EndDate:      endDate,
		GoalQuantity: input.GoalQuantity,
		GoalUnit:     input.GoalUnit,
		ReminderTime: input.ReminderTime,
	}

	var unlocked []models.Achievement
	err = service.store.Transaction(ctx, func(tx Store) error {
		if err := tx.Habits().Create(ctx, &habit); err != nil {
			return storeError("create habit", err)
		}
		created, err := tx.Users().IncrementHabitsCreated(ctx, userID)
		if err != nil {
			return storeError("increment habits created", err)
		}
		unlocked, err = evaluateAchievements(ctx, tx, userID, MetricHabits, created, nil, service.now().UTC())
		return err
	})
	if err != nil {
		return models.Habit{}, nil, settle("create habit", err)
	}

	logger.Debug("habit created", "user_id", userID, "habit_id", habit.ID, "frequency", habit.Frequency)
	return habit, unlocked, nil
}

// Update edits descriptive and schedule fields. Counters are not editable.
func (service *HabitService) Update(ctx context.Context, habitID uint, userID uint, input UpdateHabitInput) (models.Habit, error) {
	if err := input.Validate(); err != nil {
		return models.Habit{}, err
	}
	input.normalize()

	habit, err := service.Get(ctx, habitID, userID)
	if err != nil {
		return models.Habit{}, err
	}

	if input.Title != nil {
		habit.Title = *input.Title
	}
	if input.Category != nil {
		habit.Category = *input.Category
	}
	if input.Frequency != nil {
		habit.Frequency = *input.Frequency
	}
	if input.CustomDays != nil {
		habit.CustomDays = normalizeCustomDays(input.CustomDays)
	}
	if err := validateCustomDays(habit.Frequency, habit.CustomDays); err != nil {
		return models.Habit{}, err
	}
	if input.GoalQuantity != nil {
		habit.GoalQuantity = *input.GoalQuantity
	}
	if input.GoalUnit != nil {
		habit.GoalUnit = *input.GoalUnit
	}
	if input.ReminderTime != nil {
		habit.ReminderTime = *input.ReminderTime
	}
	if input.StartDate != nil {
		habit.StartDate, err = parseOptionalDate("start_date", *input.StartDate)
		if err != nil {
			return models.Habit{}, err
		}
	}
	if input.EndDate != nil {
		habit.EndDate, err = parseOptionalDate("end_date", *input.EndDate)
		if err != nil {
			return models.Habit{}, err
		}
	}
	if habit.StartDate != nil && habit.EndDate != nil && habit.EndDate.Before(*habit.StartDate) {
		return models.Habit{}, invalid("end_date", "gtefield")
	}

	if err := service.store.Habits().Save(ctx, &habit); err != nil {
		return models.Habit{}, storeError("update habit", err)
	}
	return habit, nil
}

func (service *HabitService) Get(ctx context.Context, habitID uint, userID uint) (models.Habit, error) {
	return findHabit(ctx, service.store, habitID, userID)
}

func (service *HabitService) List(ctx context.Context, userID uint, filter HabitFilter) ([]models.Habit, error) {
	habits, err := service.store.Habits().ListByUser(ctx, userID, filter.IncludeArchived, filter.IncludePaused)
	if err != nil {
		return nil, storeError("list habits", err)
	}
	return habits, nil
}

func (service *HabitService) Archive(ctx context.Context, habitID uint, userID uint) (models.Habit, error) {
	return service.setArchived(ctx, habitID, userID, true)
}

func (service *HabitService) Unarchive(ctx context.Context, habitID uint, userID uint) (models.Habit, error) {
	return service.setArchived(ctx, habitID, userID, false)
}

func (service *HabitService) setArchived(ctx context.Context, habitID uint, userID uint, archived bool) (models.Habit, error) {
	habit, err := service.Get(ctx, habitID, userID)
	if err != nil {
		return models.Habit{}, err
	}
	if habit.IsArchived == archived {
		return habit, nil
	}
	habit.IsArchived = archived
	if err := service.store.Habits().Save(ctx, &habit); err != nil {
		return models.Habit{}, storeError("archive habit", err)
	}
	return habit, nil
}

// HardDelete removes the habit row. Its logs stay behind as history and no
// longer count toward any aggregate.
func (service *HabitService) HardDelete(ctx context.Context, habitID uint, userID uint) error {
	deleted, err := service.store.Habits().DeleteForUser(ctx, habitID, userID)
	if err != nil {
		return storeError("delete habit", err)
	}
	if !deleted {
		return ErrNotFound
	}
	logger.Info("habit deleted", "user_id", userID, "habit_id", habitID)
	return nil
}

func (service *HabitService) TogglePause(ctx context.Context, habitID uint, userID uint) (models.Habit, error) {
	habit, err := service.Get(ctx, habitID, userID)
	if err != nil {
		return models.Habit{}, err
	}
	habit.IsPaused = !habit.IsPaused
	if err := service.store.Habits().Save(ctx, &habit); err != nil {
		return models.Habit{}, storeError("pause habit", err)
	}
	return habit, nil
}

// DueOn lists active habits scheduled on day.
func (service *HabitService) DueOn(ctx context.Context, userID uint, day time.Time) ([]models.Habit, error) {
	return dueHabits(ctx, service.store, userID, day)
}

func (service *HabitService) DueToday(ctx context.Context, userID uint) ([]models.Habit, error) {
	return service.DueOn(ctx, userID, service.today())
}

// ApplyCompletion records one completion on day with a streak already
// computed by the caller.
func (service *HabitService) ApplyCompletion(ctx context.Context, habitID uint, userID uint, newStreak int, day time.Time) (models.Habit, error) {
	var habit models.Habit
	err := service.store.Transaction(ctx, func(tx Store) error {
		loaded, err := findHabit(ctx, tx, habitID, userID)
		if err != nil {
			return err
		}
		habit = loaded
		return applyCompletion(ctx, tx, &habit, newStreak, day, true)
	})
	if err != nil {
		return models.Habit{}, settle("apply completion", err)
	}
	return habit, nil
}

func findHabit(ctx context.Context, store Store, habitID uint, userID uint) (models.Habit, error) {
	habit, found, err := store.Habits().FindByIDForUser(ctx, habitID, userID)
	if err != nil {
		return models.Habit{}, storeError("load habit", err)
	}
	if !found {
		return models.Habit{}, ErrNotFound
	}
	return habit, nil
}

func dueHabits(ctx context.Context, store Store, userID uint, day time.Time) ([]models.Habit, error) {
	habits, err := store.Habits().ListByUser(ctx, userID, false, false)
	if err != nil {
		return nil, storeError("list habits", err)
	}
	due := make([]models.Habit, 0, len(habits))
	for _, habit := range habits {
		if habit.IsActive() && IsScheduledOn(habit, day) {
			due = append(due, habit)
		}
	}
	return due, nil
}

// applyCounters is the only place counters grow: current is replaced,
// longest keeps its maximum, total increments when count is set and the last
// completed day only moves forward.
func applyCounters(habit *models.Habit, newStreak int, day time.Time, count bool) {
	if newStreak < 0 {
		newStreak = 0
	}
	habit.CurrentStreak = newStreak
	if newStreak > habit.LongestStreak {
		habit.LongestStreak = newStreak
	}
	if count {
		habit.TotalCompletions++
	}
	day = asCalendarDate(day)
	if habit.LastCompletedAt == nil || day.After(*habit.LastCompletedAt) {
		habit.LastCompletedAt = &day
	}
}

func applyCompletion(ctx context.Context, store Store, habit *models.Habit, newStreak int, day time.Time, count bool) error {
	applyCounters(habit, newStreak, day, count)
	if err := store.Habits().UpdateCounters(ctx, habit); err != nil {
		return storeError("update habit counters", err)
	}
	return nil
}

// resyncStreak rebuilds the current streak and last completed day from the
// stored history after a correction. Total is left alone and longest never
// drops.
func resyncStreak(ctx context.Context, store Store, habit *models.Habit, today time.Time) error {
	days, err := store.Logs().ListCompletedDays(ctx, habit.ID, habit.UserID, today)
	if err != nil {
		return storeError("load completed days", err)
	}

	if len(days) == 0 {
		habit.CurrentStreak = 0
		habit.LastCompletedAt = nil
	} else {
		last := days[len(days)-1]
		habit.CurrentStreak = StreakEndingAt(*habit, days, last)
		habit.LastCompletedAt = &last
	}
	if longest := LongestRun(*habit, days); longest > habit.LongestStreak {
		habit.LongestStreak = longest
	}
	if habit.CurrentStreak > habit.LongestStreak {
		habit.LongestStreak = habit.CurrentStreak
	}

	if err := store.Habits().UpdateCounters(ctx, habit); err != nil {
		return storeError("update habit counters", err)
	}
	return nil
}
