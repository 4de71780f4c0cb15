package models

import "time"

// TablePreference is a plain seating note ("corner booth", "table 12").
type TablePreference struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   uint      `gorm:"not null;index" json:"guest_id"`
	Value     string    `gorm:"type:varchar(255);not null" json:"value"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// The four tasting categories share one shape: a value plus a "golden"
// flag marking a standout favorite.

type FoodPreference struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   uint      `gorm:"not null;index" json:"guest_id"`
	Value     string    `gorm:"type:varchar(255);not null" json:"value"`
	Golden    bool      `gorm:"not null;default:false" json:"golden"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type WinePreference struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   uint      `gorm:"not null;index" json:"guest_id"`
	Value     string    `gorm:"type:varchar(255);not null" json:"value"`
	Golden    bool      `gorm:"not null;default:false" json:"golden"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type CocktailPreference struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   uint      `gorm:"not null;index" json:"guest_id"`
	Value     string    `gorm:"type:varchar(255);not null" json:"value"`
	Golden    bool      `gorm:"not null;default:false" json:"golden"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type SpiritsPreference struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   uint      `gorm:"not null;index" json:"guest_id"`
	Value     string    `gorm:"type:varchar(255);not null" json:"value"`
	Golden    bool      `gorm:"not null;default:false" json:"golden"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
