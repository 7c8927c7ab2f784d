package db

import (
	"context"
	"time"

	"github.com/terraincognita07/habitflow/internal/models"
	"gorm.io/gorm"
)

type MoodRepository struct {
	database *gorm.DB
}

func NewMoodRepository(database *gorm.DB) *MoodRepository {
	return &MoodRepository{database: database}
}

func (repo *MoodRepository) Create(ctx context.Context, entry *models.MoodEntry) error {
	return repo.database.WithContext(ctx).Create(entry).Error
}

func (repo *MoodRepository) FindByIDForUser(ctx context.Context, entryID uint, userID uint) (models.MoodEntry, bool, error) {
	entry := models.MoodEntry{}
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.MoodEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MoodEntry{}, false, nil
	}
	return entry, true, nil
}

// ListByUserRange returns entries logged in [from, to), newest first.
func (repo *MoodRepository) ListByUserRange(ctx context.Context, userID uint, from time.Time, to time.Time) ([]models.MoodEntry, error) {
	entries := make([]models.MoodEntry, 0)
	err := repo.database.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from.UTC(), to.UTC()).
		Order("logged_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

func (repo *MoodRepository) LatestInRange(ctx context.Context, userID uint, from time.Time, to time.Time) (models.MoodEntry, bool, error) {
	entry := models.MoodEntry{}
	result := repo.database.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from.UTC(), to.UTC()).
		Order("logged_at DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.MoodEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MoodEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *MoodRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := repo.database.WithContext(ctx).
		Model(&models.MoodEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (repo *MoodRepository) Delete(ctx context.Context, entryID uint, userID uint) (bool, error) {
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.MoodEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *MoodRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return repo.database.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.MoodEntry{}).Error
}
