package models

import "time"

// Note is the single running note per guest. The save workflow replaces
// it wholesale, it is never appended to.
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   uint      `gorm:"not null;uniqueIndex" json:"guest_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
