package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	LogStatusCompleted = "completed"
	LogStatusMissed    = "missed"
	LogStatusPending   = "pending"
)

// HabitLog is one check-in for a habit on a calendar date. Date holds the
// civil date at 00:00 UTC. Counted marks a row whose completion already
// went into the habit's total.
type HabitLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	HabitID   uint           `gorm:"not null;index:idx_habit_logs_habit_date" json:"habit_id"`
	UserID    uint           `gorm:"not null;index:idx_habit_logs_user_date" json:"user_id"`
	Date      time.Time      `gorm:"not null;index:idx_habit_logs_habit_date;index:idx_habit_logs_user_date" json:"date"`
	Status    string         `gorm:"not null;default:completed" json:"status"`
	Note      string         `gorm:"not null;default:''" json:"note"`
	Mood      string         `gorm:"not null;default:''" json:"mood"`
	Value     float64        `gorm:"not null;default:0" json:"value"`
	Counted   bool           `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (entry HabitLog) IsCompleted() bool {
	return entry.Status == LogStatusCompleted
}
