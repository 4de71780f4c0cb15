package models

import "time"

// Connection is a directed edge between two guests. Edges are always
// written in mirrored pairs (A->B and B->A) so either profile shows the
// relationship.
type Connection struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	GuestID          uint      `gorm:"not null;index" json:"guest_id"`
	ConnectedGuestID uint      `gorm:"not null;index" json:"connected_guest_id"`
	Relationship     string    `gorm:"type:varchar(100);not null" json:"relationship"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`

	ConnectedGuest *Guest `gorm:"foreignKey:ConnectedGuestID" json:"connected_guest,omitempty"`
}
