package models

import "time"

type Reservation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	GuestID         uint      `gorm:"not null;index" json:"guest_id"`
	Guest           *Guest    `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Date            string    `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	Time            string    `gorm:"type:varchar(5);not null" json:"time"`        // HH:MM
	PartySize       int       `gorm:"not null;default:1" json:"party_size"`
	Section         string    `gorm:"type:varchar(100)" json:"section"`
	TableNumber     string    `gorm:"type:varchar(50)" json:"table_number"`
	SpecialRequests string    `gorm:"type:text" json:"special_requests"`
	Status          string    `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

// No state machine is enforced between these: the floor UI deliberately
// flips completed back to confirmed as an undo.
const (
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
	ReservationNoShow    = "no_show"
)
