package models

import "time"

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DisplayName   string    `gorm:"not null;default:''" json:"display_name"`
	HabitsCreated int       `gorm:"not null;default:0" json:"habits_created"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
