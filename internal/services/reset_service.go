package services

import (
	"context"

	"github.com/terraincognita07/habitflow/internal/logger"
)

type ResetService struct {
	store Store
}

func NewResetService(store Store) *ResetService {
	return &ResetService{store: store}
}

// ClearUserData removes every habit, log, mood entry and achievement of the
// user and zeroes the lifetime habit counter, atomically.
func (service *ResetService) ClearUserData(ctx context.Context, userID uint) error {
	err := service.store.Transaction(ctx, func(tx Store) error {
		if err := tx.Achievements().DeleteByUser(ctx, userID); err != nil {
			return storeError("delete achievements", err)
		}
		if err := tx.Moods().DeleteByUser(ctx, userID); err != nil {
			return storeError("delete mood entries", err)
		}
		if err := tx.Logs().DeleteByUser(ctx, userID); err != nil {
			return storeError("delete logs", err)
		}
		if err := tx.Habits().DeleteByUser(ctx, userID); err != nil {
			return storeError("delete habits", err)
		}
		if err := tx.Users().ResetHabitsCreated(ctx, userID); err != nil {
			return storeError("reset habit counter", err)
		}
		return nil
	})
	if err != nil {
		return settle("clear user data", err)
	}
	logger.Warn("user data cleared", "user_id", userID)
	return nil
}
