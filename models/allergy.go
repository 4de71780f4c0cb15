package models

import "time"

type Allergy struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   uint      `gorm:"not null;index" json:"guest_id"`
	Value     string    `gorm:"type:varchar(255);not null" json:"value"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
