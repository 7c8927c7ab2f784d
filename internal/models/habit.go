package models

import "time"

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyCustom  = "custom"
	FrequencyMonthly = "monthly"
	FrequencyOnce    = "once"
)

const DefaultGoalQuantity = 1

type Habit struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"user_id"`
	Title            string     `gorm:"not null" json:"title"`
	Category         string     `gorm:"not null;default:''" json:"category"`
	Frequency        string     `gorm:"not null;default:daily" json:"frequency"`
	CustomDays       []int      `gorm:"serializer:json" json:"custom_days"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	GoalQuantity     int        `gorm:"not null;default:1" json:"goal_quantity"`
	GoalUnit         string     `gorm:"not null;default:''" json:"goal_unit"`
	ReminderTime     string     `gorm:"not null;default:''" json:"reminder_time"`
	CurrentStreak    int        `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak    int        `gorm:"not null;default:0" json:"longest_streak"`
	TotalCompletions int        `gorm:"not null;default:0" json:"total_completions"`
	LastCompletedAt  *time.Time `json:"last_completed_at,omitempty"`
	IsArchived       bool       `gorm:"not null;default:false" json:"is_archived"`
	IsPaused         bool       `gorm:"not null;default:false" json:"is_paused"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// IsActive reports whether the habit takes part in "active" and "due" queries.
func (habit Habit) IsActive() bool {
	return !habit.IsArchived && !habit.IsPaused
}
