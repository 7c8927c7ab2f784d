package db

import (
	"context"
	"time"

	"github.com/terraincognita07/habitflow/internal/models"
	"gorm.io/gorm"
)

type HabitLogRepository struct {
	database *gorm.DB
}

func NewHabitLogRepository(database *gorm.DB) *HabitLogRepository {
	return &HabitLogRepository{database: database}
}

func (repo *HabitLogRepository) Create(ctx context.Context, entry *models.HabitLog) error {
	return repo.database.WithContext(ctx).Create(entry).Error
}

func (repo *HabitLogRepository) Save(ctx context.Context, entry *models.HabitLog) error {
	return repo.database.WithContext(ctx).Save(entry).Error
}

func (repo *HabitLogRepository) FindByIDForUser(ctx context.Context, logID uint, userID uint) (models.HabitLog, bool, error) {
	entry := models.HabitLog{}
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", logID, userID).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.HabitLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.HabitLog{}, false, nil
	}
	return entry, true, nil
}

// FindByHabitAndDayRange returns the log for one habit on one day. A completed
// row wins over other statuses, then the newest row.
func (repo *HabitLogRepository) FindByHabitAndDayRange(ctx context.Context, habitID uint, userID uint, dayStart time.Time, dayEnd time.Time) (models.HabitLog, bool, error) {
	entry := models.HabitLog{}
	result := repo.database.WithContext(ctx).
		Where("habit_id = ? AND user_id = ? AND date >= ? AND date < ?", habitID, userID, dayStart, dayEnd).
		Order("CASE status WHEN 'completed' THEN 0 ELSE 1 END, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.HabitLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.HabitLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *HabitLogRepository) ListByUserRange(ctx context.Context, userID uint, from time.Time, to time.Time) ([]models.HabitLog, error) {
	logs := make([]models.HabitLog, 0)
	err := repo.database.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date DESC, id DESC").
		Find(&logs).Error
	return logs, err
}

func (repo *HabitLogRepository) ListByHabitRange(ctx context.Context, habitID uint, userID uint, from time.Time, to time.Time) ([]models.HabitLog, error) {
	logs := make([]models.HabitLog, 0)
	err := repo.database.WithContext(ctx).
		Where("habit_id = ? AND user_id = ? AND date >= ? AND date < ?", habitID, userID, from, to).
		Order("date DESC, id DESC").
		Find(&logs).Error
	return logs, err
}

// ListCompletedDays returns the distinct completed dates of a habit up to and
// including until, oldest first.
func (repo *HabitLogRepository) ListCompletedDays(ctx context.Context, habitID uint, userID uint, until time.Time) ([]time.Time, error) {
	logs := make([]models.HabitLog, 0)
	if err := repo.database.WithContext(ctx).
		Select("date").
		Where("habit_id = ? AND user_id = ? AND status = ? AND date <= ?", habitID, userID, models.LogStatusCompleted, until).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	days := make([]time.Time, 0, len(logs))
	for _, entry := range logs {
		day := entry.Date.UTC()
		if len(days) > 0 && days[len(days)-1].Equal(day) {
			continue
		}
		days = append(days, day)
	}
	return days, nil
}

// CountedOnDay reports whether any row of the habit on that day, deleted rows
// included, has already been counted toward the total.
func (repo *HabitLogRepository) CountedOnDay(ctx context.Context, habitID uint, userID uint, dayStart time.Time, dayEnd time.Time) (bool, error) {
	var count int64
	err := repo.database.WithContext(ctx).
		Unscoped().
		Model(&models.HabitLog{}).
		Where("habit_id = ? AND user_id = ? AND date >= ? AND date < ? AND counted = ?", habitID, userID, dayStart, dayEnd, true).
		Count(&count).Error
	return count > 0, err
}

// CountCompletedByUser counts completed logs whose habit still exists.
func (repo *HabitLogRepository) CountCompletedByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := repo.database.WithContext(ctx).
		Model(&models.HabitLog{}).
		Where("user_id = ? AND status = ?", userID, models.LogStatusCompleted).
		Where("habit_id IN (SELECT id FROM habits WHERE user_id = ?)", userID).
		Count(&count).Error
	return count, err
}

func (repo *HabitLogRepository) SoftDelete(ctx context.Context, logID uint, userID uint) (bool, error) {
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", logID, userID).
		Delete(&models.HabitLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *HabitLogRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return repo.database.WithContext(ctx).
		Unscoped().
		Where("user_id = ?", userID).
		Delete(&models.HabitLog{}).Error
}
