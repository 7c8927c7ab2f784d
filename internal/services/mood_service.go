package services

import (
	"context"
	"time"

	"github.com/terraincognita07/habitflow/internal/models"
)

type MoodService struct {
	store    Store
	location *time.Location
	now      func() time.Time
}

func NewMoodService(store Store, location *time.Location) *MoodService {
	if location == nil {
		location = time.UTC
	}
	return &MoodService{store: store, location: location, now: time.Now}
}

// LogMood appends a mood entry and unlocks mood-count achievements in the
// same transaction. LoggedAt defaults to now.
func (service *MoodService) LogMood(ctx context.Context, userID uint, input CreateMoodInput) (models.MoodEntry, []models.Achievement, error) {
	if err := input.Validate(); err != nil {
		return models.MoodEntry{}, nil, err
	}
	input.normalize()

	now := service.now().UTC()
	loggedAt := now
	if input.LoggedAt != nil {
		loggedAt = input.LoggedAt.UTC()
	}
	if loggedAt.After(now.Add(time.Minute)) {
		return models.MoodEntry{}, nil, invalid("logged_at", "future")
	}

	entry := models.MoodEntry{
		UserID:      userID,
		LoggedAt:    loggedAt,
		MoodLevel:   input.MoodLevel,
		MoodLabel:   input.MoodLabel,
		EnergyLevel: input.EnergyLevel,
		StressLevel: input.StressLevel,
		Note:        input.Note,
	}

	var unlocked []models.Achievement
	err := service.store.Transaction(ctx, func(tx Store) error {
		if err := tx.Moods().Create(ctx, &entry); err != nil {
			return storeError("create mood entry", err)
		}
		count, err := tx.Moods().CountByUser(ctx, userID)
		if err != nil {
			return storeError("count mood entries", err)
		}
		unlocked, err = evaluateAchievements(ctx, tx, userID, MetricMoodLogs, int(count), nil, now)
		return err
	})
	if err != nil {
		return models.MoodEntry{}, nil, settle("log mood", err)
	}
	return entry, unlocked, nil
}

// TodaysMood is the most recently logged entry of the current local day.
func (service *MoodService) TodaysMood(ctx context.Context, userID uint) (models.MoodEntry, bool, error) {
	from, to := DayRange(CalendarDay(service.now(), service.location)).Instants(service.location)
	entry, found, err := service.store.Moods().LatestInRange(ctx, userID, from, to)
	if err != nil {
		return models.MoodEntry{}, false, storeError("load today's mood", err)
	}
	return entry, found, nil
}

func (service *MoodService) ListRange(ctx context.Context, userID uint, window DateRange) ([]models.MoodEntry, error) {
	from, to := window.Instants(service.location)
	entries, err := service.store.Moods().ListByUserRange(ctx, userID, from, to)
	if err != nil {
		return nil, storeError("list mood entries", err)
	}
	return entries, nil
}

func (service *MoodService) Summary(ctx context.Context, userID uint, window DateRange) (MoodSummary, error) {
	entries, err := service.ListRange(ctx, userID, window)
	if err != nil {
		return MoodSummary{}, err
	}
	return SummarizeMoods(entries), nil
}

func (service *MoodService) Trend(ctx context.Context, userID uint, window DateRange) ([]TrendPoint, error) {
	entries, err := service.ListRange(ctx, userID, window)
	if err != nil {
		return nil, err
	}
	return MoodTrend(entries, window, service.location), nil
}

func (service *MoodService) Delete(ctx context.Context, entryID uint, userID uint) error {
	deleted, err := service.store.Moods().Delete(ctx, entryID, userID)
	if err != nil {
		return storeError("delete mood entry", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
