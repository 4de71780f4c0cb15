package models

import "time"

// Notable is a free-text fact worth surfacing tableside ("owns the
// gallery next door").
type Notable struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   uint      `gorm:"not null;index" json:"guest_id"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
