package services

import (
	"context"
	"time"

	"github.com/L1quidL1ght/glimpse/cache"
	"github.com/L1quidL1ght/glimpse/events"
	"github.com/L1quidL1ght/glimpse/models"
	"github.com/L1quidL1ght/glimpse/utils"
	"gorm.io/gorm"
)

// ChangeMonitor drains the change journal on an interval, drops stale
// cache keys and pushes websocket events so open staff UIs refetch
// their read models.
type ChangeMonitor struct {
	DB       *gorm.DB
	Cache    *cache.GuestCache
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB, guestCache *cache.GuestCache) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		Cache:    guestCache,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []models.DBChange

	tx := cm.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Error fetching changes: %v", err)
		return
	}

	for _, change := range changes {
		switch change.TableName {
		case "guests":
			cm.processGuestChange(change)
		case "reservations":
			cm.processReservationChange(change)
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			utils.ErrorLogger.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.ErrorLogger.Printf("Error committing change batch: %v", err)
		tx.Rollback()
		return
	}

	if len(changes) > 0 {
		utils.InfoLogger.Printf("Processed %d journal changes", len(changes))
	}
}

func (cm *ChangeMonitor) processGuestChange(change models.DBChange) {
	guestID := uint(change.RecordID)
	cm.Cache.InvalidateGuest(context.Background(), guestID)

	switch change.ActionType {
	case "DELETE":
		events.BroadcastGuestDelete(guestID)
	default:
		events.BroadcastGuestUpdate(guestID)
	}
}

func (cm *ChangeMonitor) processReservationChange(change models.DBChange) {
	if change.ActionType == "DELETE" {
		events.BroadcastReservationDelete(uint(change.RecordID))
		return
	}

	var res models.Reservation
	if err := cm.DB.First(&res, change.RecordID).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching reservation %d: %v", change.RecordID, err)
		return
	}
	events.BroadcastReservationUpdate(res)
}
