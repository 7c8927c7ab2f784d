package app

import (
	"context"

	"github.com/terraincognita07/habitflow/internal/db"
	"github.com/terraincognita07/habitflow/internal/services"
)

type gormStore struct {
	repos *db.Repositories
}

// NewStore exposes the gorm repositories through the services.Store contract.
func NewStore(repos *db.Repositories) services.Store {
	return gormStore{repos: repos}
}

func (store gormStore) Habits() services.HabitRepository             { return store.repos.Habits }
func (store gormStore) Logs() services.HabitLogRepository            { return store.repos.HabitLogs }
func (store gormStore) Moods() services.MoodRepository               { return store.repos.Moods }
func (store gormStore) Achievements() services.AchievementRepository { return store.repos.Achievements }
func (store gormStore) Users() services.UserRepository               { return store.repos.Users }

func (store gormStore) Transaction(ctx context.Context, fn func(tx services.Store) error) error {
	return store.repos.Transaction(ctx, func(tx *db.Repositories) error {
		return fn(gormStore{repos: tx})
	})
}
