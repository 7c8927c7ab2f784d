package services

import (
	"context"
	"time"

	"github.com/terraincognita07/habitflow/internal/models"
)

type HabitRepository interface {
	Create(ctx context.Context, habit *models.Habit) error
	Save(ctx context.Context, habit *models.Habit) error
	FindByIDForUser(ctx context.Context, habitID uint, userID uint) (models.Habit, bool, error)
	ListByUser(ctx context.Context, userID uint, includeArchived bool, includePaused bool) ([]models.Habit, error)
	ListIDsByUser(ctx context.Context, userID uint) ([]uint, error)
	UpdateCounters(ctx context.Context, habit *models.Habit) error
	DeleteForUser(ctx context.Context, habitID uint, userID uint) (bool, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

type HabitLogRepository interface {
	Create(ctx context.Context, entry *models.HabitLog) error
	Save(ctx context.Context, entry *models.HabitLog) error
	FindByIDForUser(ctx context.Context, logID uint, userID uint) (models.HabitLog, bool, error)
	FindByHabitAndDayRange(ctx context.Context, habitID uint, userID uint, dayStart time.Time, dayEnd time.Time) (models.HabitLog, bool, error)
	ListByUserRange(ctx context.Context, userID uint, from time.Time, to time.Time) ([]models.HabitLog, error)
	ListByHabitRange(ctx context.Context, habitID uint, userID uint, from time.Time, to time.Time) ([]models.HabitLog, error)
	ListCompletedDays(ctx context.Context, habitID uint, userID uint, until time.Time) ([]time.Time, error)
	CountedOnDay(ctx context.Context, habitID uint, userID uint, dayStart time.Time, dayEnd time.Time) (bool, error)
	CountCompletedByUser(ctx context.Context, userID uint) (int64, error)
	SoftDelete(ctx context.Context, logID uint, userID uint) (bool, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

type MoodRepository interface {
	Create(ctx context.Context, entry *models.MoodEntry) error
	FindByIDForUser(ctx context.Context, entryID uint, userID uint) (models.MoodEntry, bool, error)
	ListByUserRange(ctx context.Context, userID uint, from time.Time, to time.Time) ([]models.MoodEntry, error)
	LatestInRange(ctx context.Context, userID uint, from time.Time, to time.Time) (models.MoodEntry, bool, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, entryID uint, userID uint) (bool, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

type AchievementRepository interface {
	FindByUserAndKey(ctx context.Context, userID uint, key string) (models.Achievement, bool, error)
	CreateIfAbsent(ctx context.Context, achievement models.Achievement) (models.Achievement, bool, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Achievement, error)
	SumPointsByUser(ctx context.Context, userID uint) (int, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

type UserRepository interface {
	FindByID(ctx context.Context, userID uint) (models.User, bool, error)
	IncrementHabitsCreated(ctx context.Context, userID uint) (int, error)
	ResetHabitsCreated(ctx context.Context, userID uint) error
	ListIDs(ctx context.Context) ([]uint, error)
}

// Store groups the repositories. Transaction hands fn a Store whose
// repositories share one database transaction; an error from fn rolls back.
type Store interface {
	Habits() HabitRepository
	Logs() HabitLogRepository
	Moods() MoodRepository
	Achievements() AchievementRepository
	Users() UserRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
