package models

import "time"

// ImportantDate stores a recurring event as MM-DD, year-independent.
// Labels "Birthday" and "Anniversary" feed the month filters.
type ImportantDate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   uint      `gorm:"not null;index" json:"guest_id"`
	Label     string    `gorm:"type:varchar(100);not null" json:"label"`
	MonthDay  string    `gorm:"type:varchar(5);not null" json:"month_day"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

const (
	DateLabelBirthday    = "Birthday"
	DateLabelAnniversary = "Anniversary"
)
