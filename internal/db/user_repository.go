package db

import (
	"context"

	"github.com/terraincognita07/habitflow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(ctx context.Context, userID uint) (models.User, bool, error) {
	user := models.User{}
	result := repo.database.WithContext(ctx).Where("id = ?", userID).Limit(1).Find(&user)
	if result.Error != nil {
		return models.User{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.User{}, false, nil
	}
	return user, true, nil
}

// IncrementHabitsCreated bumps the lifetime counter, creating the user row on
// first use, and returns the new value.
func (repo *UserRepository) IncrementHabitsCreated(ctx context.Context, userID uint) (int, error) {
	database := repo.database.WithContext(ctx)
	user := models.User{ID: userID, HabitsCreated: 1}
	if err := database.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"habits_created": gorm.Expr("habits_created + 1"),
			"updated_at":     database.NowFunc(),
		}),
	}).Create(&user).Error; err != nil {
		return 0, err
	}

	var count int
	if err := database.Model(&models.User{}).
		Where("id = ?", userID).
		Pluck("habits_created", &count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) ResetHabitsCreated(ctx context.Context, userID uint) error {
	return repo.database.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("habits_created", 0).Error
}

func (repo *UserRepository) ListIDs(ctx context.Context) ([]uint, error) {
	ids := make([]uint, 0)
	if err := repo.database.WithContext(ctx).
		Model(&models.User{}).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
