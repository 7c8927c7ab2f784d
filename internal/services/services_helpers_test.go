package services

import (
	"context"
	"testing"
	"time"

	"github.com/terraincognita07/habitflow/internal/models"
)

type testServices struct {
	store        *memoryStore
	habits       *HabitService
	completions  *CompletionService
	moods        *MoodService
	stats        *StatsService
	achievements *AchievementService
}

func newTestServices(now time.Time) testServices {
	store := newMemoryStore()
	clock := fixedClock(now)

	habits := NewHabitService(store, time.UTC)
	habits.now = clock
	completions := NewCompletionService(store, time.UTC)
	completions.now = clock
	moods := NewMoodService(store, time.UTC)
	moods.now = clock
	stats := NewStatsService(store, time.UTC)
	stats.now = clock
	achievements := NewAchievementService(store)
	achievements.now = clock

	return testServices{
		store:        store,
		habits:       habits,
		completions:  completions,
		moods:        moods,
		stats:        stats,
		achievements: achievements,
	}
}

func mustCreateHabit(t *testing.T, services testServices, userID uint, input CreateHabitInput) models.Habit {
	t.Helper()
	habit, _, err := services.habits.Create(context.Background(), userID, input)
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	return habit
}

func mustComplete(t *testing.T, services testServices, userID uint, habitID uint, day string) CheckInResult {
	t.Helper()
	result, err := services.completions.LogCompletion(context.Background(), userID, CreateCompletionInput{
		HabitID: habitID,
		Date:    day,
	})
	if err != nil {
		t.Fatalf("log completion for %s: %v", day, err)
	}
	return result
}

func countAchievements(store *memoryStore, userID uint, key string) int {
	count := 0
	for _, achievement := range store.achievements {
		if achievement.UserID == userID && achievement.Key == key {
			count++
		}
	}
	return count
}
