package db

import (
	"context"

	"github.com/terraincognita07/habitflow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	database *gorm.DB
}

func NewAchievementRepository(database *gorm.DB) *AchievementRepository {
	return &AchievementRepository{database: database}
}

func (repo *AchievementRepository) FindByUserAndKey(ctx context.Context, userID uint, key string) (models.Achievement, bool, error) {
	achievement := models.Achievement{}
	result := repo.database.WithContext(ctx).
		Where(`user_id = ? AND "key" = ?`, userID, key).
		Limit(1).
		Find(&achievement)
	if result.Error != nil {
		return models.Achievement{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Achievement{}, false, nil
	}
	return achievement, true, nil
}

// CreateIfAbsent inserts the achievement unless (user_id, key) is already
// unlocked. It always returns the stored row and whether this call created it.
func (repo *AchievementRepository) CreateIfAbsent(ctx context.Context, achievement models.Achievement) (models.Achievement, bool, error) {
	result := repo.database.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
			DoNothing: true,
		}).
		Create(&achievement)
	if result.Error != nil {
		return models.Achievement{}, false, result.Error
	}
	created := result.RowsAffected > 0

	stored, found, err := repo.FindByUserAndKey(ctx, achievement.UserID, achievement.Key)
	if err != nil {
		return models.Achievement{}, false, err
	}
	if !found {
		return models.Achievement{}, false, gorm.ErrRecordNotFound
	}
	return stored, created, nil
}

func (repo *AchievementRepository) ListByUser(ctx context.Context, userID uint) ([]models.Achievement, error) {
	achievements := make([]models.Achievement, 0)
	err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at DESC, id DESC").
		Find(&achievements).Error
	return achievements, err
}

func (repo *AchievementRepository) SumPointsByUser(ctx context.Context, userID uint) (int, error) {
	var total int
	err := repo.database.WithContext(ctx).
		Model(&models.Achievement{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return total, err
}

func (repo *AchievementRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return repo.database.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Achievement{}).Error
}
