package db

import (
	"context"

	"github.com/terraincognita07/habitflow/internal/models"
	"gorm.io/gorm"
)

type HabitRepository struct {
	database *gorm.DB
}

func NewHabitRepository(database *gorm.DB) *HabitRepository {
	return &HabitRepository{database: database}
}

func (repo *HabitRepository) Create(ctx context.Context, habit *models.Habit) error {
	return repo.database.WithContext(ctx).Create(habit).Error
}

func (repo *HabitRepository) Save(ctx context.Context, habit *models.Habit) error {
	return repo.database.WithContext(ctx).Save(habit).Error
}

func (repo *HabitRepository) FindByIDForUser(ctx context.Context, habitID uint, userID uint) (models.Habit, bool, error) {
	habit := models.Habit{}
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", habitID, userID).
		Limit(1).
		Find(&habit)
	if result.Error != nil {
		return models.Habit{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Habit{}, false, nil
	}
	return habit, true, nil
}

func (repo *HabitRepository) ListByUser(ctx context.Context, userID uint, includeArchived bool, includePaused bool) ([]models.Habit, error) {
	query := repo.database.WithContext(ctx).Where("user_id = ?", userID)
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if !includePaused {
		query = query.Where("is_paused = ?", false)
	}

	habits := make([]models.Habit, 0)
	if err := query.Order("created_at ASC, id ASC").Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

func (repo *HabitRepository) ListIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	ids := make([]uint, 0)
	if err := repo.database.WithContext(ctx).
		Model(&models.Habit{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateCounters writes only the denormalized streak columns.
func (repo *HabitRepository) UpdateCounters(ctx context.Context, habit *models.Habit) error {
	return repo.database.WithContext(ctx).
		Model(habit).
		Select("current_streak", "longest_streak", "total_completions", "last_completed_at").
		Updates(habit).Error
}

func (repo *HabitRepository) DeleteForUser(ctx context.Context, habitID uint, userID uint) (bool, error) {
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", habitID, userID).
		Delete(&models.Habit{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *HabitRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return repo.database.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Habit{}).Error
}
