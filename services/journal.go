package services

import (
	"time"

	"github.com/L1quidL1ght/glimpse/models"
	"gorm.io/gorm"
)

// RecordChange appends to the change journal after a workflow commits.
// The change monitor picks the row up, drops stale cache keys and pushes
// a websocket event. Journal failures are logged by callers, never
// propagated; the primary write already succeeded.
func RecordChange(db *gorm.DB, tableName string, recordID uint, action string) error {
	return db.Create(&models.DBChange{
		TableName:  tableName,
		RecordID:   int64(recordID),
		ActionType: action,
		ChangedAt:  time.Now(),
	}).Error
}
