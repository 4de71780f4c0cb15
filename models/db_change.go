package models

import "time"

// DBChange is the change journal the workflows append to after a
// successful commit. The change monitor drains it, drops cache keys and
// broadcasts websocket events.
type DBChange struct {
	ID         uint      `gorm:"primaryKey"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_action"`
	RecordID   int64     `gorm:"not null"`
	ActionType string    `gorm:"type:varchar(10);not null;index:idx_table_action"` // INSERT, UPDATE, DELETE
	ChangedAt  time.Time `gorm:"not null"`
	Processed  bool      `gorm:"default:false;index:idx_processed"`
}
