package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/L1quidL1ght/glimpse/models"
	"github.com/redis/go-redis/v9"
)

const (
	listKey         = "glimpse:guests:list"
	guestKeyPattern = "glimpse:guests:%d"
)

// GuestCache keeps the guest list and per-guest detail read models in
// Redis. A nil client disables it entirely; every getter then reports a
// miss and every setter is a no-op.
type GuestCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGuestCache(client *redis.Client) *GuestCache {
	ttl := 30 * time.Second
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}
	return &GuestCache{client: client, ttl: ttl}
}

func (gc *GuestCache) Enabled() bool {
	return gc != nil && gc.client != nil
}

func (gc *GuestCache) GetGuestList(ctx context.Context) ([]models.Guest, bool) {
	if !gc.Enabled() {
		return nil, false
	}
	raw, err := gc.client.Get(ctx, listKey).Bytes()
	if err != nil {
		return nil, false
	}
	var guests []models.Guest
	if err := json.Unmarshal(raw, &guests); err != nil {
		return nil, false
	}
	return guests, true
}

func (gc *GuestCache) SetGuestList(ctx context.Context, guests []models.Guest) {
	if !gc.Enabled() {
		return
	}
	raw, err := json.Marshal(guests)
	if err != nil {
		return
	}
	gc.client.Set(ctx, listKey, raw, gc.ttl)
}

func (gc *GuestCache) GetGuest(ctx context.Context, id uint) (*models.Guest, bool) {
	if !gc.Enabled() {
		return nil, false
	}
	raw, err := gc.client.Get(ctx, fmt.Sprintf(guestKeyPattern, id)).Bytes()
	if err != nil {
		return nil, false
	}
	var guest models.Guest
	if err := json.Unmarshal(raw, &guest); err != nil {
		return nil, false
	}
	return &guest, true
}

func (gc *GuestCache) SetGuest(ctx context.Context, guest *models.Guest) {
	if !gc.Enabled() {
		return
	}
	raw, err := json.Marshal(guest)
	if err != nil {
		return
	}
	gc.client.Set(ctx, fmt.Sprintf(guestKeyPattern, guest.ID), raw, gc.ttl)
}

// InvalidateGuest drops both the detail key and the list; any change to
// one guest makes the cached list stale too.
func (gc *GuestCache) InvalidateGuest(ctx context.Context, id uint) {
	if !gc.Enabled() {
		return
	}
	gc.client.Del(ctx, fmt.Sprintf(guestKeyPattern, id), listKey)
}

func (gc *GuestCache) InvalidateList(ctx context.Context) {
	if !gc.Enabled() {
		return
	}
	gc.client.Del(ctx, listKey)
}
