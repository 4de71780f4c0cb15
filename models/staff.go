package models

import "time"

// Staff signs in with a 4-digit PIN. The bcrypt hash never leaves the
// server; json:"-" keeps it out of every response.
//
// IsActive carries no column default: gorm skips zero-value fields that
// have one on Create, which would store a deactivated account as
// active. Every create path sets the flag explicitly.
type Staff struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Role      string    `gorm:"type:varchar(20);not null;default:'staff'" json:"role"`
	PinHash   string    `gorm:"type:varchar(255);not null" json:"-"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)
