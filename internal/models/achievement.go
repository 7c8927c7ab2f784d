package models

import "time"

const (
	AchievementTypeStreak     = "streak"
	AchievementTypeCompletion = "completion"
	AchievementTypeHabitCount = "habit_count"
	AchievementTypeMood       = "mood"
	AchievementTypeMisc       = "misc"
)

type Achievement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:uidx_achievements_user_key" json:"user_id"`
	Key         string    `gorm:"not null;uniqueIndex:uidx_achievements_user_key" json:"key"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null;default:''" json:"description"`
	Points      int       `gorm:"not null;default:0" json:"points"`
	Type        string    `gorm:"not null" json:"type"`
	HabitID     *uint     `json:"habit_id,omitempty"`
	UnlockedAt  time.Time `gorm:"not null" json:"unlocked_at"`
}
