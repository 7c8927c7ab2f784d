package db

import (
	"context"

	"gorm.io/gorm"
)

type Repositories struct {
	database     *gorm.DB
	Users        *UserRepository
	Habits       *HabitRepository
	HabitLogs    *HabitLogRepository
	Moods        *MoodRepository
	Achievements *AchievementRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		database:     database,
		Users:        NewUserRepository(database),
		Habits:       NewHabitRepository(database),
		HabitLogs:    NewHabitLogRepository(database),
		Moods:        NewMoodRepository(database),
		Achievements: NewAchievementRepository(database),
	}
}

// Transaction runs fn against repositories bound to a single database
// transaction. Returning an error from fn rolls every write back.
func (repos *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return repos.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
