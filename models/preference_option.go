package models

import "time"

// PreferenceOption is the shared autocomplete vocabulary. Saves upsert
// into it best-effort; a failure here never blocks the guest save.
type PreferenceOption struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Category   string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_category_text" json:"category"`
	Text       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_category_text" json:"text"`
	UsageCount int       `gorm:"not null;default:1" json:"usage_count"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
