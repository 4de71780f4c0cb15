package models

import "time"

type Visit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GuestID     uint      `gorm:"not null;index" json:"guest_id"`
	Date        string    `gorm:"type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	PartySize   int       `gorm:"not null;default:1" json:"party_size"`
	TableNumber string    `gorm:"type:varchar(50)" json:"table_number"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`

	Orders []VisitOrder `gorm:"foreignKey:VisitID" json:"orders,omitempty"`
}
