package utils

import (
	"sync"
	"time"
)

// Sign-out blacklists the presented token until its natural expiry;
// the auth middleware consults this on every request.
var (
	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.RWMutex
)

func BlacklistToken(token string, until time.Time) {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	blacklistedTokens[token] = until
}

func IsTokenBlacklisted(token string) bool {
	blacklistMutex.RLock()
	defer blacklistMutex.RUnlock()

	expiry, exists := blacklistedTokens[token]
	return exists && time.Now().Before(expiry)
}

// StartBlacklistSweeper clears entries whose expiry has passed. Run once
// at startup; a one minute interval matches the session expiry check the
// clients used to perform locally.
func StartBlacklistSweeper(interval time.Duration) {
	go func() {
		for {
			time.Sleep(interval)
			blacklistMutex.Lock()
			now := time.Now()
			for token, expiry := range blacklistedTokens {
				if now.After(expiry) {
					delete(blacklistedTokens, token)
				}
			}
			blacklistMutex.Unlock()
		}
	}()
}
