package services

import (
	"context"
	"time"

	"github.com/terraincognita07/habitflow/internal/models"
)

type AchievementService struct {
	store Store
	now   func() time.Time
}

func NewAchievementService(store Store) *AchievementService {
	return &AchievementService{store: store, now: time.Now}
}

// Unlock stores the achievement once per (user, key). A repeat call returns
// the stored row and false.
func (service *AchievementService) Unlock(ctx context.Context, userID uint, input UnlockAchievementInput) (models.Achievement, bool, error) {
	if err := input.Validate(); err != nil {
		return models.Achievement{}, false, err
	}
	input.normalize()
	return unlockAchievement(ctx, service.store, userID, input, service.now().UTC())
}

// Evaluate unlocks every catalog rule value reaches for metric and returns
// the ones unlocked by this call.
func (service *AchievementService) Evaluate(ctx context.Context, userID uint, metric Metric, value int, habitID *uint) ([]models.Achievement, error) {
	return evaluateAchievements(ctx, service.store, userID, metric, value, habitID, service.now().UTC())
}

func (service *AchievementService) List(ctx context.Context, userID uint) ([]models.Achievement, error) {
	achievements, err := service.store.Achievements().ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list achievements", err)
	}
	return achievements, nil
}

func (service *AchievementService) TotalPoints(ctx context.Context, userID uint) (int, error) {
	total, err := service.store.Achievements().SumPointsByUser(ctx, userID)
	if err != nil {
		return 0, storeError("sum achievement points", err)
	}
	return total, nil
}

type CatalogEntry struct {
	AchievementRule
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

func (service *AchievementService) Catalog(ctx context.Context, userID uint) ([]CatalogEntry, error) {
	achievements, err := service.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked := make(map[string]time.Time, len(achievements))
	for _, achievement := range achievements {
		unlocked[achievement.Key] = achievement.UnlockedAt
	}

	entries := make([]CatalogEntry, 0, len(achievementCatalog))
	for _, rule := range achievementCatalog {
		entry := CatalogEntry{AchievementRule: rule}
		if at, ok := unlocked[rule.Key]; ok {
			unlockedAt := at
			entry.Unlocked = true
			entry.UnlockedAt = &unlockedAt
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func unlockAchievement(ctx context.Context, store Store, userID uint, input UnlockAchievementInput, now time.Time) (models.Achievement, bool, error) {
	existing, found, err := store.Achievements().FindByUserAndKey(ctx, userID, input.Key)
	if err != nil {
		return models.Achievement{}, false, storeError("load achievement", err)
	}
	if found {
		return existing, false, nil
	}

	stored, created, err := store.Achievements().CreateIfAbsent(ctx, models.Achievement{
		UserID:      userID,
		Key:         input.Key,
		Title:       input.Title,
		Description: input.Description,
		Points:      input.Points,
		Type:        input.Type,
		HabitID:     input.HabitID,
		UnlockedAt:  now,
	})
	if err != nil {
		return models.Achievement{}, false, storeError("create achievement", err)
	}
	return stored, created, nil
}

func evaluateAchievements(ctx context.Context, store Store, userID uint, metric Metric, value int, habitID *uint, now time.Time) ([]models.Achievement, error) {
	unlocked := make([]models.Achievement, 0)
	for _, rule := range RulesReached(metric, value) {
		input := UnlockAchievementInput{
			Key:         rule.Key,
			Title:       rule.Title,
			Description: rule.Description,
			Points:      rule.Points,
			Type:        rule.Type,
		}
		if metric == MetricStreak {
			input.HabitID = habitID
		}
		achievement, created, err := unlockAchievement(ctx, store, userID, input, now)
		if err != nil {
			return nil, err
		}
		if created {
			unlocked = append(unlocked, achievement)
		}
	}
	return unlocked, nil
}
