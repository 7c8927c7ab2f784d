package services

import (
	"context"
	"time"

	"github.com/terraincognita07/habitflow/internal/models"
)

type HabitStat struct {
	HabitID       uint   `json:"habit_id"`
	Title         string `json:"title"`
	Completed     int    `json:"completed"`
	Logged        int    `json:"logged"`
	Rate          int    `json:"rate"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

type Overview struct {
	ActiveHabits      int `json:"active_habits"`
	DueToday          int `json:"due_today"`
	CompletedToday    int `json:"completed_today"`
	TodayRate         int `json:"today_rate"`
	BestCurrentStreak int `json:"best_current_streak"`
	BestLongestStreak int `json:"best_longest_streak"`
	TotalCompletions  int `json:"total_completions"`
	TotalPoints       int `json:"total_points"`
}

type StatsService struct {
	store    Store
	location *time.Location
	now      func() time.Time
}

func NewStatsService(store Store, location *time.Location) *StatsService {
	if location == nil {
		location = time.UTC
	}
	return &StatsService{store: store, location: location, now: time.Now}
}

func (service *StatsService) Today() time.Time {
	return CalendarDay(service.now(), service.location)
}

// CompletionRate over window, for one habit when habitID is set.
func (service *StatsService) CompletionRate(ctx context.Context, userID uint, window DateRange, habitID *uint) (int, error) {
	logs, err := service.logsInRange(ctx, userID, window, habitID)
	if err != nil {
		return 0, err
	}
	return CompletionRate(logs), nil
}

func (service *StatsService) CompletionChart(ctx context.Context, userID uint, window DateRange, habitID *uint) ([]ChartBucket, error) {
	logs, err := service.logsInRange(ctx, userID, window, habitID)
	if err != nil {
		return nil, err
	}
	return BucketCompletions(logs, window), nil
}

// HabitBreakdown reports per-habit numbers for every non-archived habit.
func (service *StatsService) HabitBreakdown(ctx context.Context, userID uint, window DateRange) ([]HabitStat, error) {
	habits, err := service.store.Habits().ListByUser(ctx, userID, false, true)
	if err != nil {
		return nil, storeError("list habits", err)
	}
	logs, err := service.logsInRange(ctx, userID, window, nil)
	if err != nil {
		return nil, err
	}

	byHabit := make(map[uint][]models.HabitLog, len(habits))
	for _, entry := range logs {
		byHabit[entry.HabitID] = append(byHabit[entry.HabitID], entry)
	}

	stats := make([]HabitStat, 0, len(habits))
	for _, habit := range habits {
		habitLogs := byHabit[habit.ID]
		completed := 0
		for _, entry := range habitLogs {
			if entry.IsCompleted() {
				completed++
			}
		}
		stats = append(stats, HabitStat{
			HabitID:       habit.ID,
			Title:         habit.Title,
			Completed:     completed,
			Logged:        len(habitLogs),
			Rate:          CompletionRate(habitLogs),
			CurrentStreak: habit.CurrentStreak,
			LongestStreak: habit.LongestStreak,
		})
	}
	return stats, nil
}

func (service *StatsService) Overview(ctx context.Context, userID uint) (Overview, error) {
	habits, err := service.store.Habits().ListByUser(ctx, userID, false, false)
	if err != nil {
		return Overview{}, storeError("list habits", err)
	}

	today := service.Today()
	overview := Overview{ActiveHabits: len(habits)}
	due := make(map[uint]bool)
	for _, habit := range habits {
		if habit.CurrentStreak > overview.BestCurrentStreak {
			overview.BestCurrentStreak = habit.CurrentStreak
		}
		if habit.LongestStreak > overview.BestLongestStreak {
			overview.BestLongestStreak = habit.LongestStreak
		}
		overview.TotalCompletions += habit.TotalCompletions
		if IsScheduledOn(habit, today) {
			due[habit.ID] = true
		}
	}
	overview.DueToday = len(due)

	todays, err := service.logsInRange(ctx, userID, DayRange(today), nil)
	if err != nil {
		return Overview{}, err
	}
	for _, entry := range todays {
		if entry.IsCompleted() && due[entry.HabitID] {
			overview.CompletedToday++
			delete(due, entry.HabitID)
		}
	}
	overview.TodayRate = percent(overview.CompletedToday, overview.DueToday)

	overview.TotalPoints, err = service.store.Achievements().SumPointsByUser(ctx, userID)
	if err != nil {
		return Overview{}, storeError("sum achievement points", err)
	}
	return overview, nil
}

// logsInRange drops entries whose habit was hard-deleted.
func (service *StatsService) logsInRange(ctx context.Context, userID uint, window DateRange, habitID *uint) ([]models.HabitLog, error) {
	var (
		logs []models.HabitLog
		err  error
	)
	if habitID != nil {
		if _, err := findHabit(ctx, service.store, *habitID, userID); err != nil {
			return nil, err
		}
		logs, err = service.store.Logs().ListByHabitRange(ctx, *habitID, userID, window.Start, window.End)
	} else {
		logs, err = service.store.Logs().ListByUserRange(ctx, userID, window.Start, window.End)
	}
	if err != nil {
		return nil, storeError("list logs", err)
	}

	ids, err := service.store.Habits().ListIDsByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list habit ids", err)
	}
	known := make(map[uint]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}

	kept := make([]models.HabitLog, 0, len(logs))
	for _, entry := range logs {
		if known[entry.HabitID] {
			kept = append(kept, entry)
		}
	}
	return kept, nil
}
