package models

import "time"

type GuestTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   uint      `gorm:"not null;index" json:"guest_id"`
	Tag       string    `gorm:"type:varchar(100);not null" json:"tag"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
