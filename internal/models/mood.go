package models

import "time"

const (
	MinMoodLevel = 1
	MaxMoodLevel = 10
)

const (
	MoodHappy    = "happy"
	MoodExcited  = "excited"
	MoodGrateful = "grateful"
	MoodCalm     = "calm"
	MoodNeutral  = "neutral"
	MoodTired    = "tired"
	MoodAnxious  = "anxious"
	MoodStressed = "stressed"
	MoodSad      = "sad"
	MoodAngry    = "angry"
)

func MoodLabels() []string {
	return []string{
		MoodHappy,
		MoodExcited,
		MoodGrateful,
		MoodCalm,
		MoodNeutral,
		MoodTired,
		MoodAnxious,
		MoodStressed,
		MoodSad,
		MoodAngry,
	}
}

type MoodEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_mood_entries_user_logged" json:"user_id"`
	LoggedAt    time.Time `gorm:"not null;index:idx_mood_entries_user_logged" json:"logged_at"`
	MoodLevel   int       `gorm:"not null" json:"mood_level"`
	MoodLabel   string    `gorm:"not null" json:"mood_label"`
	EnergyLevel *int      `json:"energy_level,omitempty"`
	StressLevel *int      `json:"stress_level,omitempty"`
	Note        string    `gorm:"not null;default:''" json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}
