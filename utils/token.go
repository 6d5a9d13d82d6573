package utils

import (
	"sync"
	"time"
)

// Revoked token ids mapped to the moment their token would have expired anyway.
var (
	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.RWMutex
)

func BlacklistToken(claims *CustomClaims) {
	expiry := time.Now().Add(TokenTTL)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	blacklistedTokens[claims.ID] = expiry
}

func IsTokenBlacklisted(tokenID string) bool {
	blacklistMutex.RLock()
	defer blacklistMutex.RUnlock()
	expiry, exists := blacklistedTokens[tokenID]
	return exists && time.Now().Before(expiry)
}

// PurgeBlacklist drops entries whose token has expired and returns how many were removed.
func PurgeBlacklist(now time.Time) int {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	removed := 0
	for id, expiry := range blacklistedTokens {
		if !now.Before(expiry) {
			delete(blacklistedTokens, id)
			removed++
		}
	}
	return removed
}

// ValidateToken parses the token and rejects it when it was revoked by a logout.
func ValidateToken(tokenString string) (*CustomClaims, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if IsTokenBlacklisted(claims.ID) {
		return nil, ErrTokenBlacklisted
	}
	return claims, nil
}
