package app

import (
	"time"

	"github.com/terraincognita07/habitflow/internal/db"
	"github.com/terraincognita07/habitflow/internal/services"
	"gorm.io/gorm"
)

// Services bundles every domain service over one store and time zone.
type Services struct {
	Store        services.Store
	Location     *time.Location
	Habits       *services.HabitService
	Completions  *services.CompletionService
	Moods        *services.MoodService
	Achievements *services.AchievementService
	Stats        *services.StatsService
	Reset        *services.ResetService
}

func NewServices(database *gorm.DB, location *time.Location) *Services {
	if location == nil {
		location = time.UTC
	}
	store := NewStore(db.NewRepositories(database))
	return &Services{
		Store:        store,
		Location:     location,
		Habits:       services.NewHabitService(store, location),
		Completions:  services.NewCompletionService(store, location),
		Moods:        services.NewMoodService(store, location),
		Achievements: services.NewAchievementService(store),
		Stats:        services.NewStatsService(store, location),
		Reset:        services.NewResetService(store),
	}
}

// Reminders builds the reminder planner on top of scheduler.
func (bundle *Services) Reminders(scheduler services.ReminderScheduler) *services.ReminderService {
	return services.NewReminderService(bundle.Store, scheduler, bundle.Location)
}
